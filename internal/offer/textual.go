package offer

import (
	"regexp"
	"strconv"
	"strings"
)

// The textual price tiers run against the flattened recognized text when the
// geometric pass finds nothing. Strict priority order, first success wins; a
// failed numeric parse falls through to the next tier, never to an error.
//
// Tier order:
//  1. a canonically punctuated amount: a decimal part, comma-grouped
//     thousands, or both ("$12.5", "$1,250", "$1,234.56")
//  2. dollars and cents split by a single separator character ("$15 80",
//     "$15.80", "$15•80"), covering superscript cents that recognition
//     flattened into the line
//  3. an unseparated run of 3+ digits, last two read as cents ("$1580")
//  4. a plain whole-dollar amount ("$15")
type moneyTier struct {
	re    *regexp.Regexp
	parse func(match []string) (float64, bool)
}

// centsSeparators covers the space and dot lookalikes recognizers produce
// for a superscript gap: space, no-break space, narrow no-break space, thin
// space, period, middle dot, hyphenation point, bullet.
const centsSeparators = "    .·‧•"

var moneyTiers = []moneyTier{
	{
		// Either branch carries punctuation a bare "$15" prefix of "$15 80"
		// cannot have, so flattened superscript cents stay with tier 2.
		re: regexp.MustCompile(`\$([0-9]{1,3}(?:,[0-9]{3})*\.[0-9]{1,2}|[0-9]{1,3}(?:,[0-9]{3})+)`),
		parse: func(match []string) (float64, bool) {
			raw := strings.ReplaceAll(strings.TrimSpace(match[1]), ",", "")
			v, err := strconv.ParseFloat(raw, 64)
			return v, err == nil
		},
	},
	{
		re: regexp.MustCompile(`\$([0-9]{1,6})[` + centsSeparators + `]([0-9]{2})(?:[^0-9]|$)`),
		parse: func(match []string) (float64, bool) {
			dollars, err := strconv.Atoi(strings.TrimSpace(match[1]))
			if err != nil {
				return 0, false
			}
			cents, err := strconv.Atoi(strings.TrimSpace(match[2]))
			if err != nil {
				return 0, false
			}
			return float64(dollars) + float64(cents)/100.0, true
		},
	},
	{
		re: regexp.MustCompile(`\$([0-9](?:[0-9,]*[0-9])?)`),
		parse: func(match []string) (float64, bool) {
			digits := strings.ReplaceAll(strings.TrimSpace(match[1]), ",", "")
			if len(digits) < 3 {
				return 0, false
			}
			dollars, err := strconv.Atoi(digits[:len(digits)-2])
			if err != nil {
				return 0, false
			}
			cents, err := strconv.Atoi(digits[len(digits)-2:])
			if err != nil {
				return 0, false
			}
			return float64(dollars) + float64(cents)/100.0, true
		},
	},
	{
		re: regexp.MustCompile(`\$([0-9]{1,6})\b`),
		parse: func(match []string) (float64, bool) {
			v, err := strconv.ParseFloat(strings.TrimSpace(match[1]), 64)
			return v, err == nil
		},
	},
}

var (
	milesRe  = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*mi\b`)
	pickupRe = regexp.MustCompile(`([A-Za-z .'-]+,\s?[A-Z]{2})`)
)

// ExtractPriceText extracts a dollar amount from flattened recognized text,
// or nil when no tier matches.
func ExtractPriceText(text string) *float64 {
	for _, tier := range moneyTiers {
		match := tier.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if v, ok := tier.parse(match); ok {
			return &v
		}
	}
	return nil
}

// ExtractMiles extracts the gig distance ("11 mi") from flattened text, or
// nil when absent.
func ExtractMiles(text string) *float64 {
	match := milesRe.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	v, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil
	}
	return &v
}

// ExtractPickup extracts a "City, ST" place fragment usable as a geocoding
// query, or "" when absent. Best-effort: the two-letter code is not checked
// against any region list.
func ExtractPickup(text string) string {
	match := pickupRe.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
