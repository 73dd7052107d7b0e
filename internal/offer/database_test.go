package offer

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltDB", func() {
	var db *BoltDB

	BeforeEach(func() {
		var err error
		db, err = NewBoltDB(filepath.Join(GinkgoT().TempDir(), "test.db"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	Describe("offer storage", func() {
		var offer *Offer

		BeforeEach(func() {
			pay := 15.80
			miles := 11.0
			offer = &Offer{
				ID:          "1700000000000000000",
				PayUSD:      &pay,
				GigMiles:    &miles,
				PickupQuery: "Oakland, CA",
				RawText:     "$15\n80\n11 mi\nOakland, CA",
				Filename:    "1700000000000000000_screenshot.png",
				ContentType: "image/png",
				CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
				UpdatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			}
		})

		It("round-trips an offer", func() {
			Expect(db.SaveOffer(offer)).To(Succeed())

			got, err := db.GetOffer(offer.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(offer.ID))
			Expect(got.PayUSD).NotTo(BeNil())
			Expect(*got.PayUSD).To(BeNumerically("~", 15.80, 1e-9))
			Expect(got.PickupQuery).To(Equal("Oakland, CA"))
			Expect(got.CreatedAt.Equal(offer.CreatedAt)).To(BeTrue())
		})

		It("errors for an unknown ID", func() {
			_, err := db.GetOffer("missing")
			Expect(err).To(HaveOccurred())
		})

		It("lists stored offers", func() {
			Expect(db.SaveOffer(offer)).To(Succeed())

			second := *offer
			second.ID = "1700000000000000001"
			Expect(db.SaveOffer(&second)).To(Succeed())

			offers, err := db.ListOffers()
			Expect(err).NotTo(HaveOccurred())
			Expect(offers).To(HaveLen(2))
		})

		It("lists nothing when empty", func() {
			offers, err := db.ListOffers()
			Expect(err).NotTo(HaveOccurred())
			Expect(offers).To(BeEmpty())
		})

		It("deletes an offer", func() {
			Expect(db.SaveOffer(offer)).To(Succeed())
			Expect(db.DeleteOffer(offer.ID)).To(Succeed())

			_, err := db.GetOffer(offer.ID)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("vehicle profile", func() {
		It("falls back to the default profile when none is saved", func() {
			vehicle, err := db.GetVehicle()
			Expect(err).NotTo(HaveOccurred())
			Expect(vehicle).To(Equal(DefaultVehicle))
		})

		It("round-trips a saved profile", func() {
			Expect(db.SaveVehicle(Vehicle{MPG: 35, GasPriceUSD: 3.99})).To(Succeed())

			vehicle, err := db.GetVehicle()
			Expect(err).NotTo(HaveOccurred())
			Expect(vehicle.MPG).To(BeNumerically("~", 35.0, 1e-9))
			Expect(vehicle.GasPriceUSD).To(BeNumerically("~", 3.99, 1e-9))
		})
	})
})
