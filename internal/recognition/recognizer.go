package recognition

// Rect is a normalized bounding box in the recognized image, origin at the
// bottom-left, all values expressed as fractions of the image dimensions.
type Rect struct {
	MinX   float64 `json:"min_x"`
	MaxX   float64 `json:"max_x"`
	MidX   float64 `json:"mid_x"`
	MidY   float64 `json:"mid_y"`
	Height float64 `json:"height"`
}

// Span attaches geometry to a byte range of an observation's text.
type Span struct {
	Start int
	End   int
	Box   Rect
}

// Observation is one recognized line/region of text. Spans carry word-level
// geometry when the recognizer supports it; an observation without spans
// still participates in textual extraction.
type Observation struct {
	Text  string
	Spans []Span
}

// BoxFor resolves the bounding box for text[start:end]. It returns the union
// of all spans overlapping the range, or false when no span geometry covers
// any part of it.
func (o Observation) BoxFor(start, end int) (Rect, bool) {
	var (
		found                  bool
		minX, maxX, minY, maxY float64
	)

	for _, s := range o.Spans {
		if s.End <= start || s.Start >= end {
			continue
		}
		top := s.Box.MidY + s.Box.Height/2
		bottom := s.Box.MidY - s.Box.Height/2
		if !found {
			minX, maxX, minY, maxY = s.Box.MinX, s.Box.MaxX, bottom, top
			found = true
			continue
		}
		if s.Box.MinX < minX {
			minX = s.Box.MinX
		}
		if s.Box.MaxX > maxX {
			maxX = s.Box.MaxX
		}
		if bottom < minY {
			minY = bottom
		}
		if top > maxY {
			maxY = top
		}
	}

	if !found {
		return Rect{}, false
	}

	return Rect{
		MinX:   minX,
		MaxX:   maxX,
		MidX:   (minX + maxX) / 2,
		MidY:   (minY + maxY) / 2,
		Height: maxY - minY,
	}, true
}

// Recognizer defines the interface for text recognition over an image.
// An empty observation slice is a valid, non-error result (no text found).
type Recognizer interface {
	// Recognize extracts text observations from an image. Image data with a
	// contentType of "image/png" is sent to the model as-is; anything else
	// goes through PrepareImage first, so callers that already prepared the
	// upload pass PNG and avoid a second decode.
	Recognize(imageData []byte, contentType string) ([]Observation, error)
	// Close closes the recognizer and releases resources
	Close() error
}
