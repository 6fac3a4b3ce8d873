package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/themultilangtranslator-png/multilang-translator/internal/cache"
	"github.com/themultilangtranslator-png/multilang-translator/internal/langdetect"
)

// Recorder persists computed results as a best-effort side channel. It must
// never fail the request; implementations log their own errors.
type Recorder interface {
	Record(ctx context.Context, result *Result)
}

// Request is one logical translation request as seen by the service.
type Request struct {
	Author string
	Text   string
	// Languages is the ordered target list; empty falls back to the
	// configured defaults.
	Languages []string
}

// Result is the assembled translation outcome. Constructed once per request,
// immutable afterwards, and stored by value in the cache.
type Result struct {
	Author           string            `json:"author"`
	OriginalText     string            `json:"original_text"`
	DetectedLanguage string            `json:"detected_language"`
	// Languages echoes the requested codes in request order; Translations is
	// guaranteed to hold every one of them as a key.
	Languages    []string          `json:"languages"`
	Translations map[string]string `json:"translations"`
	RenderedText string            `json:"rendered_text,omitempty"`
}

// Options configures a Service.
type Options struct {
	Provider         Provider
	Store            *cache.Store
	Recorder         Recorder
	DefaultLanguages []string
	CacheTTL         time.Duration
	Logger           zerolog.Logger
}

// Service is the translation orchestrator: it validates input, deduplicates
// repeated requests through the cache, drives the provider, and normalizes the
// provider's answer into a complete Result.
type Service struct {
	provider Provider
	store    *cache.Store
	recorder Recorder
	defaults []string
	cacheTTL time.Duration
	logger   zerolog.Logger
}

func NewService(opts Options) *Service {
	defaults := NormalizeTargetLanguages(opts.DefaultLanguages)
	if len(defaults) == 0 {
		defaults = []string{"en"}
	}
	return &Service{
		provider: opts.Provider,
		store:    opts.Store,
		recorder: opts.Recorder,
		defaults: defaults,
		cacheTTL: opts.CacheTTL,
		logger:   opts.Logger,
	}
}

// Translate runs one request through the pipeline. Exactly one provider call
// is made per cache miss and none on a hit. Two concurrent requests with the
// same fingerprint may both miss and both compute; the later write wins.
func (s *Service) Translate(ctx context.Context, req Request) (*Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text must not be empty: %w", ErrValidation)
	}

	languages := NormalizeTargetLanguages(req.Languages)
	if len(languages) == 0 {
		languages = s.defaults
	}

	key := cache.Fingerprint(req.Author, text, languages)
	if cached, ok := s.store.Get(key); ok {
		if result, isResult := cached.(*Result); isResult {
			s.logger.Debug().Str("fingerprint", key).Msg("translation cache hit")
			return result, nil
		}
	}

	if s.provider == nil {
		return nil, fmt.Errorf("no provider wired: %w", ErrProviderUnavailable)
	}

	resp, err := s.provider.Translate(ctx, TranslateRequest{
		Text:            text,
		TargetLanguages: languages,
	})
	if err != nil {
		return nil, err
	}

	result := s.assemble(req.Author, text, languages, resp)
	s.store.Set(key, result, s.cacheTTL)

	if s.recorder != nil {
		s.recorder.Record(ctx, result)
	}
	return result, nil
}

// assemble reconciles the provider's answer against the requested language
// list: every requested code is present (empty string when the provider
// skipped it), values are cleaned of stray markdown, and the detected language
// is normalized with local detection as a fallback.
func (s *Service) assemble(author, text string, languages []string, resp *TranslateResponse) *Result {
	detected := NormalizeDetectedLanguage(resp.DetectedLanguage)
	if detected == "" {
		detected = langdetect.Detect(text)
	}
	if detected == "" {
		detected = UnknownLanguage
	}

	translations := make(map[string]string, len(languages))
	for _, code := range languages {
		translations[code] = cleanTranslatedText(resp.Translations[code])
	}

	result := &Result{
		Author:           author,
		OriginalText:     text,
		DetectedLanguage: detected,
		Languages:        languages,
		Translations:     translations,
	}
	result.RenderedText = Render(result)
	return result
}

// cleanTranslatedText strips markdown artifacts the model sometimes leaks
// into values (code-fence and bold markers) and trims whitespace.
func cleanTranslatedText(value string) string {
	cleaned := strings.ReplaceAll(value, "```", "")
	cleaned = strings.ReplaceAll(cleaned, "**", "")
	return strings.TrimSpace(cleaned)
}
