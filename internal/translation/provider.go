package translation

import "context"

// Provider detects the language of a text and translates it into an ordered
// list of target languages in a single call.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	Name() string
}

// TranslateRequest describes one provider call.
type TranslateRequest struct {
	Text string
	// TargetLanguages is order-preserving; the provider is instructed to
	// translate into exactly these codes.
	TargetLanguages []string
}

// TranslateResponse is the provider's structured answer. DetectedLanguage is
// raw provider output (a name or a code); normalization happens in the
// service. Translations is keyed by target language code and may be missing
// codes the provider skipped.
type TranslateResponse struct {
	DetectedLanguage string
	Translations     map[string]string
}
