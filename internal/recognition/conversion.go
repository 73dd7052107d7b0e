package recognition

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// maxRasterDim bounds the longest side of the raster sent to the vision
// model. Modern phone screenshots can exceed 3000px; recognition accuracy
// does not improve past this size and upload cost does.
const maxRasterDim = 2200

// recognizePromptHeader is the shared prompt prefix used by all vision-model
// recognizers for reading delivery-offer screenshots.
const recognizePromptHeader = `You are reading a screenshot of a delivery gig app showing an offer to a driver. Transcribe every distinct piece of text on the screen. Pay particular attention to:

1. **Dollar amounts**: the offered pay, often rendered with the cents as a small superscript next to the dollar figure (e.g. a large "$15" with a tiny "80" above-right of it). Report such fragments exactly as rendered, as separate entries.

2. **Distances**: mileage figures such as "11 mi" or "3.4 mi".

3. **Place names**: pickup/dropoff locations such as "Oakland, CA".

`

// geometryPromptSuffix asks for per-word normalized bounding boxes. The
// coordinate contract matches the extraction core: origin bottom-left,
// values as fractions of the image dimensions.
const geometryPromptSuffix = `Return ONLY valid JSON in this exact format:
{
  "lines": [
    {
      "text": "the full text of one visual line or region",
      "words": [
        {"text": "one", "x": 0.0, "y": 0.0, "w": 0.0, "h": 0.0}
      ]
    }
  ]
}

Important:
- Each line's words must appear in the same order as in the line text
- x and y are the LEFT and BOTTOM edge of the word's box, as fractions of the image width and height, with the origin at the BOTTOM-LEFT of the image
- w and h are the box width and height as fractions of the image dimensions
- Do not include any text before or after the JSON
- Do not use markdown code blocks`

// textPromptSuffix is the geometry-free variant for models that cannot
// report reliable box coordinates.
const textPromptSuffix = `Return ONLY valid JSON in this exact format:
{
  "lines": [
    {"text": "the full text of one visual line or region"}
  ]
}

Important:
- One entry per visual line or region, top to bottom
- Do not include any text before or after the JSON
- Do not use markdown code blocks`

// pdfToImage renders the first page of a PDF screenshot export to PNG.
func pdfToImage(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}

	return rasterToPNG(img)
}

// rasterToPNG downscales oversized rasters and encodes the result as PNG.
func rasterToPNG(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	if bounds.Dx() > maxRasterDim || bounds.Dy() > maxRasterDim {
		img = imaging.Fit(img, maxRasterDim, maxRasterDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// imageToPNG converts any supported image format to PNG.
func imageToPNG(imageData []byte, mimeType string) ([]byte, error) {
	var img image.Image
	var err error

	// HEIC/HEIF (iPhone screenshots) is not supported by Go's standard
	// image package
	if isHEICFormat(imageData) || isHEICMimeType(mimeType) {
		img, err = heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(imageData))
		if err != nil {
			if strings.Contains(err.Error(), "unknown format") || strings.Contains(err.Error(), "unsupported") {
				return nil, fmt.Errorf("unsupported image format. Supported formats: JPEG, PNG, GIF, HEIC, HEIF, PDF. Error: %w", err)
			}
			return nil, fmt.Errorf("decoding image: %w", err)
		}
	}

	return rasterToPNG(img)
}

// isHEICFormat checks if the image data is in HEIC/HEIF format by looking
// for an ftyp box with a HEIC-related brand.
func isHEICFormat(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	if string(data[4:8]) == "ftyp" {
		brand := string(data[8:12])
		if brand == "heic" || brand == "heif" || brand == "mif1" || brand == "msf1" {
			return true
		}
	}
	return false
}

// isHEICMimeType checks if the MIME type indicates HEIC/HEIF format
func isHEICMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return mimeType == "image/heic" || mimeType == "image/heif" ||
		strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}

// convertToPNG converts PDFs and non-PNG images to PNG format.
// Returns the PNG data and a boolean indicating if conversion occurred.
func convertToPNG(imageData []byte, mimeType string) ([]byte, bool, error) {
	if mimeType == "application/pdf" {
		pngData, err := pdfToImage(imageData)
		if err != nil {
			return nil, false, fmt.Errorf("converting PDF to image: %w", err)
		}
		return pngData, true, nil
	} else if mimeType != "image/png" || isHEICFormat(imageData) || isHEICMimeType(mimeType) {
		pngData, err := imageToPNG(imageData, mimeType)
		if err != nil {
			return nil, false, fmt.Errorf("converting image to PNG: %w", err)
		}
		return pngData, true, nil
	}
	// Already PNG; still decode to enforce the raster size bound
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, false, fmt.Errorf("decoding PNG: %w", err)
	}
	if img.Bounds().Dx() > maxRasterDim || img.Bounds().Dy() > maxRasterDim {
		pngData, err := rasterToPNG(img)
		if err != nil {
			return nil, false, err
		}
		return pngData, true, nil
	}
	return imageData, false, nil
}

// PrepareImage normalizes the MIME type and converts the screenshot to PNG
// if needed. Returns the final image data, the MIME type to use, and whether
// conversion occurred. An error here means the input could not be decoded
// into a raster at all.
func PrepareImage(imageData []byte, contentType string) ([]byte, string, bool, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if mimeType == "" {
		mimeType = "image/jpeg" // default
	}

	finalImageData, converted, err := convertToPNG(imageData, mimeType)
	if err != nil {
		return nil, "", false, err
	}

	// Everything is PNG from here on
	return finalImageData, "image/png", converted, nil
}
