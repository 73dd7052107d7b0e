package offer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gigscout/gigscout/internal/recognition"
)

// Superscript-cents pairing thresholds, in normalized image units. A cents
// token must start at (or fractionally before) the dollar token's right
// edge, sit at or above its vertical center, and be clearly smaller.
const (
	centsMinGapX       = -0.01
	centsMaxGapX       = 0.10
	centsMinOffsetY    = -0.05
	centsMaxOffsetY    = 0.25
	centsMaxHeightRate = 0.85
)

// dollarCandidate is a candidate whole-dollar amount with its location.
type dollarCandidate struct {
	digits string // 1-4 numeric chars
	box    recognition.Rect
}

// smallToken is a candidate cents fragment: exactly two digits recognized as
// their own token.
type smallToken struct {
	text string
	box  recognition.Rect
}

var dollarAmountRe = regexp.MustCompile(`\$([0-9]{1,4})`)

// digitRuns returns the [start, end) byte range of every maximal run of
// ASCII digits in s. Runs are maximal, so a run of length 2 is by
// construction not adjacent to any other digit.
func digitRuns(s string) [][2]int {
	var runs [][2]int
	start := -1
	for i := 0; i <= len(s); i++ {
		isDigit := i < len(s) && s[i] >= '0' && s[i] <= '9'
		if isDigit && start == -1 {
			start = i
		}
		if !isDigit && start != -1 {
			runs = append(runs, [2]int{start, i})
			start = -1
		}
	}
	return runs
}

// collectSmallTokens finds every two-digit run with resolvable geometry.
func collectSmallTokens(observations []recognition.Observation) []smallToken {
	var tokens []smallToken
	for _, obs := range observations {
		for _, r := range digitRuns(obs.Text) {
			if r[1]-r[0] != 2 {
				continue
			}
			box, ok := obs.BoxFor(r[0], r[1])
			if !ok {
				continue
			}
			tokens = append(tokens, smallToken{text: obs.Text[r[0]:r[1]], box: box})
		}
	}
	return tokens
}

// collectDollarCandidates finds digit runs that plausibly are the
// whole-dollar part of the pay amount: either prefixed by "$", or a short
// bare numeric token where recognition dropped the currency symbol.
func collectDollarCandidates(observations []recognition.Observation) []dollarCandidate {
	var candidates []dollarCandidate
	for _, obs := range observations {
		for _, m := range dollarAmountRe.FindAllStringSubmatchIndex(obs.Text, -1) {
			start, end := m[2], m[3]
			box, ok := obs.BoxFor(start, end)
			if !ok {
				continue
			}
			candidates = append(candidates, dollarCandidate{digits: obs.Text[start:end], box: box})
		}

		trimmed := strings.TrimSpace(obs.Text)
		if utf8.RuneCountInString(trimmed) > 4 || strings.Contains(trimmed, "$") {
			continue
		}
		if !strings.ContainsAny(trimmed, "0123456789") {
			continue
		}
		// Currency symbol lost in recognition; take the first short digit
		// run as a bare candidate.
		for _, r := range digitRuns(obs.Text) {
			if r[1]-r[0] < 1 || r[1]-r[0] > 4 {
				continue
			}
			box, ok := obs.BoxFor(r[0], r[1])
			if ok {
				candidates = append(candidates, dollarCandidate{digits: obs.Text[r[0]:r[1]], box: box})
			}
			break
		}
	}
	return candidates
}

// isSuperscriptCents reports whether token s geometrically looks like a
// superscript cents marker for dollar candidate d. Larger midY is higher on
// screen in this bottom-left-origin coordinate space.
func isSuperscriptCents(d dollarCandidate, s smallToken) bool {
	dx := s.box.MinX - d.box.MaxX
	if dx < centsMinGapX || dx > centsMaxGapX {
		return false
	}
	dy := s.box.MidY - d.box.MidY
	if dy < centsMinOffsetY || dy > centsMaxOffsetY {
		return false
	}
	ratio := s.box.Height / math.Max(0.0001, d.box.Height)
	return ratio <= centsMaxHeightRate
}

// ExtractPriceGeometric scans recognized observations for a dollar token
// paired with a nearby superscript cents token and returns the combined
// amount, or nil when no pairing qualifies. Recognizers often deliver
// superscript cents as a separate region; flattening the text loses that
// structure, so geometry is consulted before any textual pattern.
func ExtractPriceGeometric(observations []recognition.Observation) *float64 {
	smalls := collectSmallTokens(observations)
	if len(smalls) == 0 {
		return nil
	}

	for _, d := range collectDollarCandidates(observations) {
		dollars, err := strconv.Atoi(d.digits)
		if err != nil {
			continue
		}

		bestDist := math.MaxFloat64
		var best *smallToken
		for i := range smalls {
			s := smalls[i]
			if !isSuperscriptCents(d, s) {
				continue
			}
			dist := math.Hypot(s.box.MidX-d.box.MidX, s.box.MidY-d.box.MidY)
			if dist < bestDist {
				bestDist = dist
				best = &smalls[i]
			}
		}
		if best == nil {
			continue
		}

		cents, err := strconv.Atoi(best.text)
		if err != nil {
			continue
		}
		value := float64(dollars) + float64(cents)/100.0
		return &value
	}

	return nil
}
