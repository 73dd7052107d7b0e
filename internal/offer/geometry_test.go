package offer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gigscout/gigscout/internal/recognition"
)

// boxAt builds a Rect from its left edge, width, vertical center and height.
func boxAt(minX, width, midY, height float64) recognition.Rect {
	return recognition.Rect{
		MinX:   minX,
		MaxX:   minX + width,
		MidX:   minX + width/2,
		MidY:   midY,
		Height: height,
	}
}

// obsWithBox builds a single-span observation whose whole text shares one box.
func obsWithBox(text string, box recognition.Rect) recognition.Observation {
	return recognition.Observation{
		Text:  text,
		Spans: []recognition.Span{{Start: 0, End: len(text), Box: box}},
	}
}

var _ = Describe("ExtractPriceGeometric", func() {
	var (
		observations []recognition.Observation
		result       *float64
	)

	JustBeforeEach(func() {
		result = ExtractPriceGeometric(observations)
	})

	When("a dollar token has a superscript cents token above-right", func() {
		BeforeEach(func() {
			observations = []recognition.Observation{
				obsWithBox("$15", boxAt(0.10, 0.10, 0.50, 0.05)),
				obsWithBox("80", boxAt(0.205, 0.035, 0.58, 0.03)),
			}
		})

		It("pairs them into dollars plus cents", func() {
			Expect(result).NotTo(BeNil())
			Expect(*result).To(BeNumerically("~", 15.80, 1e-9))
		})
	})

	When("the currency symbol was not recognized", func() {
		BeforeEach(func() {
			// Short bare numeric token stands in for the dollar amount
			observations = []recognition.Observation{
				obsWithBox("15", boxAt(0.10, 0.10, 0.50, 0.05)),
				obsWithBox("80", boxAt(0.205, 0.035, 0.58, 0.03)),
			}
		})

		It("still pairs the bare token with its cents", func() {
			Expect(result).NotTo(BeNil())
			Expect(*result).To(BeNumerically("~", 15.80, 1e-9))
		})
	})

	When("two cents tokens qualify for the same dollar token", func() {
		BeforeEach(func() {
			observations = []recognition.Observation{
				obsWithBox("$15", boxAt(0.10, 0.10, 0.50, 0.05)),
				obsWithBox("99", boxAt(0.23, 0.035, 0.60, 0.03)),
				obsWithBox("80", boxAt(0.205, 0.035, 0.58, 0.03)),
			}
		})

		It("chooses the nearer one by center distance", func() {
			Expect(result).NotTo(BeNil())
			Expect(*result).To(BeNumerically("~", 15.80, 1e-9))
		})
	})

	When("the small token sits too far to the right", func() {
		BeforeEach(func() {
			observations = []recognition.Observation{
				obsWithBox("$15", boxAt(0.10, 0.10, 0.50, 0.05)),
				obsWithBox("80", boxAt(0.35, 0.035, 0.58, 0.03)),
			}
		})

		It("finds no pairing", func() {
			Expect(result).To(BeNil())
		})
	})

	When("the small token sits below the dollar token", func() {
		BeforeEach(func() {
			observations = []recognition.Observation{
				obsWithBox("$15", boxAt(0.10, 0.10, 0.50, 0.05)),
				obsWithBox("80", boxAt(0.205, 0.035, 0.40, 0.03)),
			}
		})

		It("finds no pairing", func() {
			Expect(result).To(BeNil())
		})
	})

	When("the small token is as tall as the dollar token", func() {
		BeforeEach(func() {
			// Same height: a neighboring figure, not a superscript
			observations = []recognition.Observation{
				obsWithBox("$15", boxAt(0.10, 0.10, 0.50, 0.05)),
				obsWithBox("80", boxAt(0.205, 0.035, 0.55, 0.05)),
			}
		})

		It("finds no pairing", func() {
			Expect(result).To(BeNil())
		})
	})

	When("observations carry no geometry", func() {
		BeforeEach(func() {
			observations = []recognition.Observation{
				{Text: "$15"},
				{Text: "80"},
			}
		})

		It("finds no pairing", func() {
			Expect(result).To(BeNil())
		})
	})

	When("a three-digit token sits next to the dollar token", func() {
		BeforeEach(func() {
			// Cents fragments are exactly two digits
			observations = []recognition.Observation{
				obsWithBox("$15", boxAt(0.10, 0.10, 0.50, 0.05)),
				obsWithBox("804", boxAt(0.205, 0.05, 0.58, 0.03)),
			}
		})

		It("finds no pairing", func() {
			Expect(result).To(BeNil())
		})
	})

	When("there are no observations", func() {
		BeforeEach(func() {
			observations = nil
		})

		It("finds no pairing", func() {
			Expect(result).To(BeNil())
		})
	})
})
