package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"github.com/nkhandel/taskpilot-api/internal/config"
	"github.com/nkhandel/taskpilot-api/internal/derivation"
	"google.golang.org/genai"
)

// GeminiDeriver implements the derivation.Deriver interface using
// Google's Gemini API to turn free text into a structured task draft.
type GeminiDeriver struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// Ensure GeminiDeriver implements the derivation.Deriver interface.
var _ derivation.Deriver = (*GeminiDeriver)(nil)

// NewGeminiDeriver creates a new instance of GeminiDeriver with the provided
// dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - config: LLM configuration containing API key, model name, and timeout
//
// Returns:
//   - A properly initialized GeminiDeriver or an error if initialization fails
func NewGeminiDeriver(ctx context.Context, logger *slog.Logger, config config.LLMConfig) (*GeminiDeriver, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	// Validate configuration
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", derivation.ErrInvalidConfig)
	}

	if config.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", derivation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("task").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			derivation.ErrInvalidConfig, err)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			derivation.ErrInvalidConfig, err)
	}

	deriver := &GeminiDeriver{
		logger:         logger.With(slog.String("component", "gemini_deriver")),
		config:         config,
		promptTemplate: promptTemplate,
		client:         client,
		model:          config.ModelName,
	}

	return deriver, nil
}

// DeriveTask sends the user's free text to the Gemini API and normalizes
// the model's answer into a task draft anchored at now.
//
// The call is a single attempt bounded by the configured timeout. A failed
// or unparseable response surfaces as an error wrapping
// derivation.ErrDerivationFailed; nothing is persisted here.
func (g *GeminiDeriver) DeriveTask(ctx context.Context, text string, now time.Time) (*derivation.TaskDraft, error) {
	prompt, err := g.createPrompt(ctx, text, now)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(g.config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := g.callGemini(callCtx, prompt)
	if err != nil {
		return nil, err
	}

	draft, err := derivation.Normalize(raw, now)
	if err != nil {
		g.logger.WarnContext(ctx, "Model response failed normalization",
			"error", err)
		return nil, err
	}

	g.logger.InfoContext(ctx, "Task derived from free text",
		"input_length", len(text),
		"title_length", len(draft.Title),
		"status", draft.Status)

	return draft, nil
}

// createPrompt generates a prompt string from the template with the provided
// text, anchoring relative time expressions at now.
func (g *GeminiDeriver) createPrompt(ctx context.Context, text string, now time.Time) (string, error) {
	if text == "" {
		return "", derivation.ErrEmptyText
	}

	data := promptData{
		Now:  now.UTC().Format(time.RFC3339),
		Text: text,
	}

	var promptBuffer bytes.Buffer
	if err := g.promptTemplate.Execute(&promptBuffer, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	g.logger.DebugContext(ctx, "Prompt generated from template",
		"input_length", len(text),
		"prompt_length", promptBuffer.Len())

	return promptBuffer.String(), nil
}

// callGemini makes a single call to the Gemini API and parses the JSON body
// of the response into a raw draft.
func (g *GeminiDeriver) callGemini(ctx context.Context, prompt string) (*derivation.RawDraft, error) {
	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", derivation.ErrDerivationFailed, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", derivation.ErrInvalidResponse)
	}

	return parseResponse(resp.Text())
}

// parseResponse converts the model's JSON text into a raw draft.
func parseResponse(text string) (*derivation.RawDraft, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty response body", derivation.ErrInvalidResponse)
	}

	var raw derivation.RawDraft
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			derivation.ErrInvalidResponse, err)
	}

	return &raw, nil
}
