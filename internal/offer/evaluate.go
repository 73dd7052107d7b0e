package offer

// Net $/mile thresholds for the verdict.
const (
	goodPerMile = 2.0
	okPerMile   = 1.0
)

// Evaluate computes the net profitability of an offer after fuel cost. Pure
// function: identical inputs always yield identical output. Degenerate
// numerics (zero or negative total distance, zero mpg) normalize to safe
// zeros and a bad verdict instead of failing.
func Evaluate(pay, gigMiles, extraMiles, mpg, gasPrice float64) Computation {
	total := gigMiles + extraMiles
	if total < 0 {
		total = 0
	}

	var gallons float64
	if total > 0 && mpg > 0 {
		gallons = total / mpg
	}
	fuelCost := gallons * gasPrice
	profit := pay - fuelCost

	var perMile float64
	if total > 0 && mpg > 0 {
		perMile = profit / total
	}

	verdict := VerdictBad
	switch {
	case perMile >= goodPerMile:
		verdict = VerdictGood
	case perMile >= okPerMile:
		verdict = VerdictOK
	}

	return Computation{
		TotalMiles:      total,
		DollarsPerMile:  perMile,
		FuelCost:        fuelCost,
		ProfitAfterFuel: profit,
		Verdict:         verdict,
	}
}
