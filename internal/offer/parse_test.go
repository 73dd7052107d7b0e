package offer

import (
	"bytes"
	"errors"
	"image"
	"image/png"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gigscout/gigscout/internal/recognition"
)

// fakeRecognizer returns canned observations and records invocations.
type fakeRecognizer struct {
	observations []recognition.Observation
	err          error
	calls        int
}

func (f *fakeRecognizer) Recognize(imageData []byte, contentType string) ([]recognition.Observation, error) {
	f.calls++
	return f.observations, f.err
}

func (f *fakeRecognizer) Close() error { return nil }

// tinyPNG encodes a 1x1 image so the conversion layer accepts the payload.
func tinyPNG() []byte {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

var _ = Describe("Parse", func() {
	var (
		recognizer  *fakeRecognizer
		imageData   []byte
		contentType string
		result      Parsed
	)

	BeforeEach(func() {
		recognizer = &fakeRecognizer{}
		imageData = tinyPNG()
		contentType = "image/png"
	})

	JustBeforeEach(func() {
		result = Parse(recognizer, imageData, contentType)
	})

	When("the screenshot recognizes with geometry", func() {
		BeforeEach(func() {
			recognizer.observations = []recognition.Observation{
				obsWithBox("$15", boxAt(0.10, 0.10, 0.50, 0.05)),
				obsWithBox("80", boxAt(0.205, 0.035, 0.58, 0.03)),
				{Text: "Guaranteed $9 payout"},
				{Text: "11 mi total"},
				{Text: "Oakland, CA"},
			}
		})

		It("prefers the geometric price reading", func() {
			Expect(result.PayUSD).NotTo(BeNil())
			Expect(*result.PayUSD).To(BeNumerically("~", 15.80, 1e-9))
		})

		It("extracts distance and pickup from the flattened text", func() {
			Expect(result.GigMiles).NotTo(BeNil())
			Expect(*result.GigMiles).To(BeNumerically("~", 11.0, 1e-9))
			Expect(result.PickupQuery).To(Equal("Oakland, CA"))
		})

		It("joins the observation texts into the raw transcript", func() {
			Expect(result.RawText).To(Equal("$15\n80\nGuaranteed $9 payout\n11 mi total\nOakland, CA"))
		})
	})

	When("the observations carry no geometry", func() {
		BeforeEach(func() {
			recognizer.observations = []recognition.Observation{
				{Text: "$12.50 total"},
				{Text: "3.4 mi"},
				{Text: "Oakland, CA"},
			}
		})

		It("falls back to the textual price reading", func() {
			Expect(result.PayUSD).NotTo(BeNil())
			Expect(*result.PayUSD).To(BeNumerically("~", 12.50, 1e-9))
		})

		It("extracts the remaining fields", func() {
			Expect(result.GigMiles).NotTo(BeNil())
			Expect(*result.GigMiles).To(BeNumerically("~", 3.4, 1e-9))
			Expect(result.PickupQuery).To(Equal("Oakland, CA"))
		})
	})

	When("recognition finds nothing useful", func() {
		BeforeEach(func() {
			recognizer.observations = []recognition.Observation{
				{Text: "Accept"},
				{Text: "Decline"},
			}
		})

		It("leaves every field absent but keeps the transcript", func() {
			Expect(result.PayUSD).To(BeNil())
			Expect(result.GigMiles).To(BeNil())
			Expect(result.PickupQuery).To(Equal(""))
			Expect(result.RawText).To(Equal("Accept\nDecline"))
		})
	})

	When("the recognizer fails", func() {
		BeforeEach(func() {
			recognizer.err = errors.New("model unavailable")
		})

		It("degrades to an all-absent result", func() {
			Expect(result).To(Equal(Parsed{}))
		})
	})

	When("the image is not decodable", func() {
		BeforeEach(func() {
			imageData = []byte("not an image at all")
			contentType = "image/png"
		})

		It("degrades to an all-absent result", func() {
			Expect(result).To(Equal(Parsed{}))
		})

		It("never invokes the recognizer", func() {
			Expect(recognizer.calls).To(BeZero())
		})
	})
})
