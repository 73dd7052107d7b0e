package recognition

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Ollama implements the Recognizer interface using a local Ollama vision
// model. Local vision models transcribe screen text reasonably well but
// cannot be trusted for box coordinates, so this recognizer returns
// observations without spans; extraction then runs on the textual tier only.
//
// Recommended models (in order of recommendation):
//   - llava:1.6 (best balance of accuracy and speed)
//   - qwen2-vl:7b (good screen-text transcription)
//   - llava:latest (general purpose vision model)
type Ollama struct {
	baseURL string
	model   string
	config  Config
	client  *http.Client
}

// NewOllama creates a new Ollama Recognizer instance
func NewOllama(baseURL string, modelName string, config Config) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if modelName == "" {
		modelName = "llava"
	}

	return &Ollama{
		baseURL: baseURL,
		model:   modelName,
		config:  config,
		client: &http.Client{
			Timeout: 120 * time.Second, // Ollama can be slower, especially for vision models
		},
	}, nil
}

// ollamaChatRequest represents the request body for Ollama's chat API
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Images   []string        `json:"images,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaChatResponse represents the response from Ollama's chat API
type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

// Recognize extracts text observations (without geometry) from a screenshot
func (o *Ollama) Recognize(imageData []byte, contentType string) ([]Observation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
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

	imageBase64 := base64.StdEncoding.EncodeToString(finalImageData)

	prompt := recognizePromptHeader + o.config.promptDirectives() + "\n" + textPromptSuffix

	reqBody := ollamaChatRequest{
		Model:  o.model,
		Stream: false,
		Messages: []ollamaMessage{
			{
				Role:    "system",
				Content: "You are an expert at transcribing text from phone app screenshots. You must carefully read all text in images, including tiny superscript digits.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Images: []string{imageBase64},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat", o.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling ollama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	observations, err := parseObservationJSON(chatResp.Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing observations: %w", err)
	}

	// Drop any spans the model volunteered anyway; its coordinates are
	// not reliable enough for the superscript pairing test.
	for i := range observations {
		observations[i].Spans = nil
	}

	return observations, nil
}

// Close closes the Ollama client (no-op for HTTP client)
func (o *Ollama) Close() error {
	return nil
}
