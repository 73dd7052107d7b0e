package offer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractPriceText", func() {
	var (
		text   string
		result *float64
	)

	JustBeforeEach(func() {
		result = ExtractPriceText(text)
	})

	expectPay := func(expected float64) {
		It("extracts the amount", func() {
			Expect(result).NotTo(BeNil())
			Expect(*result).To(BeNumerically("~", expected, 1e-9))
		})
	}

	When("the amount uses grouped thousands with a decimal", func() {
		BeforeEach(func() {
			text = "Pay $1,234.56 for this delivery"
		})
		expectPay(1234.56)
	})

	When("the amount uses grouped thousands without a decimal", func() {
		BeforeEach(func() {
			text = "Guaranteed $1,250 today"
		})
		expectPay(1250)
	})

	When("the amount has a single decimal digit", func() {
		BeforeEach(func() {
			text = "Total $12.5 payout"
		})
		expectPay(12.5)
	})

	When("the amount has a decimal and no thousands groups", func() {
		BeforeEach(func() {
			text = "$9.75"
		})
		expectPay(9.75)
	})

	When("dollars and cents are split by a space", func() {
		BeforeEach(func() {
			text = "$15 80"
		})
		expectPay(15.80)
	})

	When("dollars and cents are split by a period", func() {
		BeforeEach(func() {
			text = "$15.80"
		})
		expectPay(15.80)
	})

	When("dollars and cents are split by a bullet", func() {
		BeforeEach(func() {
			text = "$15•80"
		})
		expectPay(15.80)
	})

	When("dollars and cents are split by a narrow no-break space", func() {
		BeforeEach(func() {
			text = "$15 80"
		})
		expectPay(15.80)
	})

	When("the amount is an unseparated four-digit run", func() {
		BeforeEach(func() {
			text = "$1580"
		})
		expectPay(15.80)
	})

	When("the amount is an unseparated three-digit run", func() {
		BeforeEach(func() {
			text = "$580"
		})
		expectPay(5.80)
	})

	When("the amount is only two digits", func() {
		BeforeEach(func() {
			// Too short for the cents-run reading; whole dollars
			text = "$58"
		})
		expectPay(58.0)
	})

	When("the amount is a plain whole-dollar figure", func() {
		BeforeEach(func() {
			text = "$15"
		})
		expectPay(15.0)
	})

	When("the text has no dollar amount", func() {
		BeforeEach(func() {
			text = "Picked up 11 mi from here"
		})

		It("extracts nothing", func() {
			Expect(result).To(BeNil())
		})
	})

	When("the text is empty", func() {
		BeforeEach(func() {
			text = ""
		})

		It("extracts nothing", func() {
			Expect(result).To(BeNil())
		})
	})
})

var _ = Describe("ExtractMiles", func() {
	var (
		text   string
		result *float64
	)

	JustBeforeEach(func() {
		result = ExtractMiles(text)
	})

	When("a whole-number distance is present", func() {
		BeforeEach(func() {
			text = "Picked up 11 mi from here"
		})

		It("extracts the distance", func() {
			Expect(result).NotTo(BeNil())
			Expect(*result).To(BeNumerically("~", 11.0, 1e-9))
		})
	})

	When("a decimal distance is present", func() {
		BeforeEach(func() {
			text = "3.4 mi total"
		})

		It("extracts the distance", func() {
			Expect(result).NotTo(BeNil())
			Expect(*result).To(BeNumerically("~", 3.4, 1e-9))
		})
	})

	When("the distance abuts the unit", func() {
		BeforeEach(func() {
			text = "11mi"
		})

		It("extracts the distance", func() {
			Expect(result).NotTo(BeNil())
			Expect(*result).To(BeNumerically("~", 11.0, 1e-9))
		})
	})

	When("there is no mi token", func() {
		BeforeEach(func() {
			text = "11 minutes away"
		})

		It("extracts nothing", func() {
			Expect(result).To(BeNil())
		})
	})
})

var _ = Describe("ExtractPickup", func() {
	var (
		text   string
		result string
	)

	JustBeforeEach(func() {
		result = ExtractPickup(text)
	})

	When("a city and region code are embedded in screen text", func() {
		BeforeEach(func() {
			text = "$15 80\nOakland, CA\n11 mi"
		})

		It("recovers the place label", func() {
			Expect(result).To(Equal("Oakland, CA"))
		})
	})

	When("the city name contains punctuation", func() {
		BeforeEach(func() {
			text = "2: Coeur d'Alene, ID (4.1 mi)"
		})

		It("recovers the place label", func() {
			Expect(result).To(Equal("Coeur d'Alene, ID"))
		})
	})

	When("no place label is present", func() {
		BeforeEach(func() {
			text = "$15 80 for 11 mi"
		})

		It("recovers nothing", func() {
			Expect(result).To(Equal(""))
		})
	})
})
