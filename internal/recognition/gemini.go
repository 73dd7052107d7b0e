package recognition

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini implements the Recognizer interface using Google Gemini. It is the
// only bundled recognizer that reports per-word geometry, so it is the one
// that enables the geometric superscript-cents pairing.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	config Config
}

// NewGemini creates a new Gemini Recognizer instance
func NewGemini(apiKey string, modelName string, config Config) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	return &Gemini{
		client: client,
		model:  model,
		config: config,
	}, nil
}

// Recognize extracts text observations, with word boxes, from a screenshot
func (g *Gemini) Recognize(imageData []byte, contentType string) ([]Observation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Callers normally hand over PrepareImage output, which is already PNG;
	// convert only when given something else.
	finalImageData := imageData
	if contentType != "image/png" {
		var err error
		finalImageData, _, _, err = PrepareImage(imageData, contentType)
		if err != nil {
			return nil, err
		}
	}

	prompt := recognizePromptHeader + g.config.promptDirectives() + "\n" + geometryPromptSuffix

	// genai.ImageData expects just the format suffix (e.g., "png"), not the
	// full MIME type. After PrepareImage, everything is PNG.
	parts := []genai.Part{
		genai.ImageData("png", finalImageData),
		genai.Text(prompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	observations, err := parseObservationJSON(responseText.String())
	if err != nil {
		return nil, fmt.Errorf("parsing observations: %w", err)
	}

	return observations, nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
