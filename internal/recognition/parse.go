package recognition

import (
	"encoding/json"
	"fmt"
	"strings"
)

type wordJSON struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

type lineJSON struct {
	Text  string     `json:"text"`
	Words []wordJSON `json:"words"`
}

type observationsJSON struct {
	Lines []lineJSON `json:"lines"`
}

// parseObservationJSON parses the JSON response from a vision model into
// observations. Word geometry is optional; words that cannot be located in
// their line's text or carry a degenerate box are dropped rather than
// failing the whole response.
func parseObservationJSON(text string) ([]Observation, error) {
	// Remove markdown code blocks if present
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	text = text[startIdx : endIdx+1]

	var payload observationsJSON
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	observations := make([]Observation, 0, len(payload.Lines))
	for _, line := range payload.Lines {
		lineText := strings.TrimSpace(line.Text)
		if lineText == "" {
			continue
		}

		obs := Observation{Text: lineText}

		// Locate each word in the line text left to right; the cursor keeps
		// repeated words from resolving to the same range.
		cursor := 0
		for _, w := range line.Words {
			wordText := strings.TrimSpace(w.Text)
			if wordText == "" || w.W <= 0 || w.H <= 0 {
				continue
			}
			idx := strings.Index(lineText[cursor:], wordText)
			if idx == -1 {
				continue
			}
			start := cursor + idx
			end := start + len(wordText)
			cursor = end

			minX := clamp01(w.X)
			maxX := clamp01(w.X + w.W)
			minY := clamp01(w.Y)
			maxY := clamp01(w.Y + w.H)
			if maxX <= minX || maxY <= minY {
				continue
			}

			obs.Spans = append(obs.Spans, Span{
				Start: start,
				End:   end,
				Box: Rect{
					MinX:   minX,
					MaxX:   maxX,
					MidX:   (minX + maxX) / 2,
					MidY:   (minY + maxY) / 2,
					Height: maxY - minY,
				},
			})
		}

		observations = append(observations, obs)
	}

	return observations, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
