package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultEndpoint points to the hosted OpenAI-compatible API.
	DefaultEndpoint = "https://api.openai.com/v1"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"
	// DefaultTimeout bounds one provider call; absence of a response within
	// this window is a provider failure, not a hang.
	DefaultTimeout = 15 * time.Second
)

// OpenAIProvider translates text by calling an OpenAI-compatible chat
// completions endpoint and asking for a strict JSON answer.
type OpenAIProvider struct {
	endpointURL string
	model       string
	apiKey      string
	client      *http.Client
}

// NewOpenAIProvider builds a provider for the given endpoint, model, and API
// key. The key may be empty; Translate then fails with ErrProviderUnavailable.
func NewOpenAIProvider(endpoint, model, apiKey string, timeout time.Duration) *OpenAIProvider {
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenAIProvider{
		endpointURL: chatCompletionsURL(normalizeEndpoint(endpoint)),
		model:       trimmedModel,
		apiKey:      strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

// ModelName returns the configured model identifier.
func (p *OpenAIProvider) ModelName() string {
	if p == nil {
		return ""
	}
	return p.model
}

func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if p == nil || p.apiKey == "" {
		return nil, fmt.Errorf("missing API key: %w", ErrProviderUnavailable)
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required: %w", ErrValidation)
	}
	if len(req.TargetLanguages) == 0 {
		return nil, fmt.Errorf("target languages are required: %w", ErrValidation)
	}

	body, err := json.Marshal(chatRequest{
		Model:          p.model,
		ResponseFormat: &responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(text, req.TargetLanguages)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal provider request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build provider request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send provider request: %w: %w", ErrProvider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read provider response: %w: %w", ErrProvider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload chatErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error.Message); msg != "" {
				return nil, fmt.Errorf("provider status %d: %s: %w", resp.StatusCode, msg, ErrProvider)
			}
		}
		return nil, fmt.Errorf("provider status %d: %w", resp.StatusCode, ErrProvider)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode provider response: %w: %w", ErrMalformedResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("provider response missing choices: %w", ErrMalformedResponse)
	}

	content := stripCodeFence(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("provider response was empty: %w", ErrMalformedResponse)
	}

	var structured structuredTranslation
	if err := json.Unmarshal([]byte(content), &structured); err != nil {
		return nil, fmt.Errorf("parse structured translation: %w: %w", ErrMalformedResponse, err)
	}
	if structured.Translations == nil {
		return nil, fmt.Errorf("structured translation missing translations object: %w", ErrMalformedResponse)
	}

	return &TranslateResponse{
		DetectedLanguage: strings.TrimSpace(structured.DetectedLanguage),
		Translations:     structured.Translations,
	}, nil
}

const systemPrompt = "You are a translation engine. Detect the source language of the " +
	"user's text automatically and translate it into every requested target language, " +
	"in the requested order. Preserve tone, register, and idiomatic meaning rather than " +
	"substituting words literally. Respond with strict JSON only, no extra formatting: " +
	`{"detected_language":"<language>","translations":{"<code>":"<text>"}}`

func buildUserPrompt(text string, targets []string) string {
	payload, _ := json.Marshal(map[string]any{
		"text":             text,
		"target_languages": targets,
	})
	return string(payload)
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type structuredTranslation struct {
	DetectedLanguage string            `json:"detected_language"`
	Translations     map[string]string `json:"translations"`
}

// stripCodeFence unwraps model output that arrives inside a markdown code
// fence despite the JSON response format.
func stripCodeFence(raw string) string {
	content := strings.TrimSpace(raw)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if newline := strings.IndexByte(content, '\n'); newline >= 0 {
		firstLine := strings.TrimSpace(content[:newline])
		if firstLine == "" || isAlphaWord(firstLine) {
			content = content[newline+1:]
		}
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

func isAlphaWord(value string) bool {
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return value != ""
}

func normalizeEndpoint(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return DefaultEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultEndpoint
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	if parsed.Path == "" {
		parsed.Path = "/v1"
	}
	return parsed.String()
}

func chatCompletionsURL(endpoint string) string {
	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultEndpoint + "/chat/completions"
	}

	path := strings.TrimRight(parsed.Path, "/")
	switch {
	case strings.HasSuffix(path, "/chat/completions"):
		parsed.Path = path
	case strings.HasSuffix(path, "/v1"):
		parsed.Path = path + "/chat/completions"
	case path == "":
		parsed.Path = "/v1/chat/completions"
	default:
		parsed.Path = path + "/v1/chat/completions"
	}

	return parsed.String()
}
