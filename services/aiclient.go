package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/quillhq/blog-backend/errs"
)

// DefaultModel is used when AI_MODEL is not configured.
const DefaultModel = "gemini-2.0-flash-lite"

var (
	fenceOpen  = regexp.MustCompile("(?i)^```(json)?\\s*")
	fenceClose = regexp.MustCompile("```$")
)

// Generation is the normalized result of one model call. Raw always carries
// the provider's text as received; Text is the fence-stripped form; JSON is
// non-nil only when Text parsed as a JSON document.
type Generation struct {
	Raw  string
	Text string
	JSON json.RawMessage
}

// AIClient forwards prompts to a generative model. The model is injected at
// construction so handlers never reach for a package-level client.
type AIClient struct {
	model llms.Model
}

func NewAIClient(model llms.Model) *AIClient {
	return &AIClient{model: model}
}

// NewGoogleModel builds the production Google generative model. modelName
// falls back to DefaultModel when empty.
func NewGoogleModel(ctx context.Context, apiKey, modelName string) (llms.Model, error) {
	if modelName == "" {
		modelName = DefaultModel
	}
	return googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
}

// Generate sends a prompt and normalizes the response. An empty response is
// an upstream error, never an empty Generation.
func (c *AIClient) Generate(ctx context.Context, prompt string) (Generation, error) {
	raw, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
	if err != nil {
		return Generation{}, errs.NewUpstreamError("model call failed", "", err)
	}
	if strings.TrimSpace(raw) == "" {
		return Generation{}, errs.NewEmptyModelResponseError()
	}
	return NormalizeModelOutput(raw), nil
}

// GenerateJSON sends a prompt and requires a parsable JSON document back.
// On a non-JSON response the raw payload is echoed in the error for
// diagnostics.
func (c *AIClient) GenerateJSON(ctx context.Context, prompt string) (json.RawMessage, error) {
	gen, err := c.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if gen.JSON == nil {
		return nil, errs.NewUpstreamError("failed to parse JSON from model response", gen.Raw, errs.ErrUnparsableContent)
	}
	return gen.JSON, nil
}

// NormalizeModelOutput cleans free-form model text. Providers often wrap JSON
// in markdown code fences; the fences are stripped, escaped newlines are
// unescaped, and the result is probed as JSON.
func NormalizeModelOutput(raw string) Generation {
	text := strings.TrimSpace(raw)
	text = fenceOpen.ReplaceAllString(text, "")
	text = fenceClose.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.TrimSpace(text)

	gen := Generation{Raw: raw, Text: text}
	if looksLikeJSON(text) && json.Valid([]byte(text)) {
		gen.JSON = json.RawMessage(text)
	}
	return gen
}

func looksLikeJSON(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}
