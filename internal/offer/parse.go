package offer

import (
	"log/slog"
	"strings"

	"github.com/gigscout/gigscout/internal/recognition"
)

// Parse runs text recognition on a screenshot and assembles a Parsed value.
//
// Total failure is never worse than an empty form: an undecodable image
// short-circuits to an all-absent result without invoking recognition, and a
// recognizer fault is treated the same as finding no text. The geometric
// price pass runs first; the textual tiers only see the flattened text when
// it finds nothing.
func Parse(recognizer recognition.Recognizer, imageData []byte, contentType string) Parsed {
	prepared, mimeType, _, err := recognition.PrepareImage(imageData, contentType)
	if err != nil {
		slog.Warn("Screenshot not decodable, skipping recognition", "error", err)
		return Parsed{}
	}

	observations, err := recognizer.Recognize(prepared, mimeType)
	if err != nil {
		slog.Warn("Recognition failed, treating as no text found", "error", err)
		observations = nil
	}

	texts := make([]string, 0, len(observations))
	for _, obs := range observations {
		texts = append(texts, obs.Text)
	}
	rawText := strings.Join(texts, "\n")

	pay := ExtractPriceGeometric(observations)
	if pay == nil {
		pay = ExtractPriceText(rawText)
	}

	return Parsed{
		PayUSD:      pay,
		GigMiles:    ExtractMiles(rawText),
		PickupQuery: ExtractPickup(rawText),
		RawText:     rawText,
	}
}
