// Package analysis runs LLM-backed summarization of filings and research
// bundles, then applies code-side cleanup to the model's output: pipeline
// dedup by completeness score and financial sanity flags.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultModel = "claude-sonnet-4-20250514"

const systemPrompt = "You are a biotech equity research analyst. You summarize filings and clinical data conservatively, never invent figures, and return strict JSON only."

// Caller is the uniform interface over LLM providers; local and hosted
// implementations are interchangeable behind it.
type Caller interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicCaller struct {
	messages AnthropicMessager
	model    string
}

// NewAnthropicCallerFromEnv builds the hosted caller. A missing API key is a
// hard, descriptive error surfaced only here, at the point the provider is
// actually needed.
func NewAnthropicCallerFromEnv() (*AnthropicCaller, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	model := strings.TrimSpace(os.Getenv("TARGETSCOUT_LLM_MODEL"))
	if model == "" {
		model = DefaultModel
	}
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicCaller{messages: &c.Messages, model: model}, nil
}

func NewAnthropicCallerWith(m AnthropicMessager, model string) *AnthropicCaller {
	if model == "" {
		model = DefaultModel
	}
	return &AnthropicCaller{messages: m, model: model}
}

func (a *AnthropicCaller) ModelName() string { return a.model }

func (a *AnthropicCaller) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   4096,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

// generate runs one prompt and decodes the response into an untyped JSON
// value. Malformed output does not crash the caller: the raw text is returned
// alongside the error so diagnostics keep the unparsed response.
func generate(ctx context.Context, caller Caller, prompt string) (map[string]any, string, error) {
	started := time.Now()
	raw, err := caller.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, "", fmt.Errorf("llm call: %w", err)
	}
	clean := stripCodeFences(raw)
	var out map[string]any
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		log.Printf("targetscout llm_parse_error elapsed_ms=%d err=%q", time.Since(started).Milliseconds(), err.Error())
		return nil, raw, fmt.Errorf("llm response parse: %w", err)
	}
	log.Printf("targetscout llm_call_done elapsed_ms=%d response_chars=%d", time.Since(started).Milliseconds(), len(clean))
	return out, raw, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
