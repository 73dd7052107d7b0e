package offer

import "time"

// Verdict is the three-level profitability call on an offer.
type Verdict string

const (
	VerdictGood Verdict = "good"
	VerdictOK   Verdict = "ok"
	VerdictBad  Verdict = "bad"
)

// Parsed is the result of one screenshot extraction pass. All fields are
// advisory defaults the driver may overwrite; a nil/empty field means the
// extractor found nothing, not that extraction failed.
type Parsed struct {
	PayUSD      *float64 `json:"pay_usd,omitempty"`
	GigMiles    *float64 `json:"gig_miles,omitempty"`
	PickupQuery string   `json:"pickup_query,omitempty"`
	RawText     string   `json:"raw_text"`
}

// Computation is the profitability breakdown for an offer. Derived
// deterministically from its inputs, never mutated after construction.
type Computation struct {
	TotalMiles      float64 `json:"total_miles"`
	DollarsPerMile  float64 `json:"dollars_per_mile"`
	FuelCost        float64 `json:"fuel_cost"`
	ProfitAfterFuel float64 `json:"profit_after_fuel"`
	Verdict         Verdict `json:"verdict"`
}

// Vehicle is the driver's persisted vehicle profile.
type Vehicle struct {
	MPG         float64 `json:"mpg"`
	GasPriceUSD float64 `json:"gas_price_usd"` // per gallon
}

// Normalized clamps MPG to the supported 5-80 range, snapped to 0.5 steps,
// and floors the gas price at zero.
func (v Vehicle) Normalized() Vehicle {
	mpg := v.MPG
	if mpg < 5 {
		mpg = 5
	}
	if mpg > 80 {
		mpg = 80
	}
	// Snap to 0.5 steps
	mpg = float64(int(mpg*2+0.5)) / 2

	gas := v.GasPriceUSD
	if gas < 0 {
		gas = 0
	}

	return Vehicle{MPG: mpg, GasPriceUSD: gas}
}

// Offer is a stored delivery offer with its screenshot, extracted fields and
// latest profitability computation.
type Offer struct {
	ID          string       `json:"id"`
	PayUSD      *float64     `json:"pay_usd,omitempty"`
	GigMiles    *float64     `json:"gig_miles,omitempty"`
	PickupQuery string       `json:"pickup_query,omitempty"`
	ExtraMiles  *float64     `json:"extra_miles,omitempty"` // driver's detour to the pickup
	RawText     string       `json:"raw_text"`
	Filename    string       `json:"filename"`
	ContentType string       `json:"content_type"`
	Computation *Computation `json:"computation,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
