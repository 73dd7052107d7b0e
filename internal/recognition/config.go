package recognition

import (
	"fmt"
	"strings"
)

// Config carries recognition hints passed through to the vision model. None
// of these affect extraction directly; they bias the recognizer toward
// keeping small tokens (superscript cents) and expected vocabulary intact.
type Config struct {
	// LanguageCorrection enables the model's language-level correction of
	// recognized tokens.
	LanguageCorrection bool

	// MinTextHeight is the smallest text height to recognize, as a fraction
	// of image height. Low enough to keep tiny superscript cents as
	// independently recognized tokens.
	MinTextHeight float64

	// Vocabulary is an optional hint list of expected tokens (unit
	// abbreviations, known proper nouns).
	Vocabulary []string
}

// DefaultConfig returns the recognition configuration used for app
// screenshots: highest accuracy, language correction on, and a text height
// floor of 1.5% of the image.
func DefaultConfig() Config {
	return Config{
		LanguageCorrection: true,
		MinTextHeight:      0.015,
		Vocabulary:         []string{"mi", "mins", "min", "hr", "pickup", "dropoff"},
	}
}

// promptDirectives renders the configuration as prompt instructions for
// vision-model recognizers.
func (c Config) promptDirectives() string {
	var b strings.Builder

	minHeight := c.MinTextHeight
	if minHeight <= 0 {
		minHeight = 0.015
	}
	fmt.Fprintf(&b, "- Include every piece of text taller than %.1f%% of the image height, even tiny superscript digits next to larger numbers. Report superscript fragments as their own entries, never merged into the neighboring text.\n", minHeight*100)

	if c.LanguageCorrection {
		b.WriteString("- Correct obvious single-character recognition mistakes using surrounding language context.\n")
	} else {
		b.WriteString("- Transcribe text exactly as rendered without correcting it.\n")
	}

	if len(c.Vocabulary) > 0 {
		fmt.Fprintf(&b, "- These tokens commonly appear on such screens: %s.\n", strings.Join(c.Vocabulary, ", "))
	}

	return b.String()
}
