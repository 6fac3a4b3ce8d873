package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/themultilangtranslator-png/multilang-translator/internal/line"
	"github.com/themultilangtranslator-png/multilang-translator/internal/translation"
)

const webhookSecret = "test-channel-secret"

func textEventBody(text string) string {
	return fmt.Sprintf(`{
		"destination": "U0",
		"events": [
			{
				"type": "message",
				"replyToken": "reply-1",
				"source": {"type": "user", "userId": "U1234567890"},
				"message": {"id": "m1", "type": "text", "text": %q}
			}
		]
	}`, text)
}

func signedWebhookRequest(secret, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(line.SignatureHeader, line.Sign(secret, []byte(body)))
	return req
}

func TestHandleWebhookTranslatesAndReplies(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		resp: &translation.TranslateResponse{
			DetectedLanguage: "english",
			Translations:     map[string]string{"en": "Hello there", "fa": "سلام"},
		},
	}
	replier := &stubReplier{}
	server := newTestServer(provider, replier, Options{ChannelSecret: webhookSecret})

	rec := doRequest(server, signedWebhookRequest(webhookSecret, textEventBody("Hello there")))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}
	if replier.calls != 1 {
		t.Fatalf("expected one reply, got %d", replier.calls)
	}
	if replier.tokens[0] != "reply-1" {
		t.Fatalf("unexpected reply token: %q", replier.tokens[0])
	}
	if !strings.Contains(replier.texts[0], "[fa]") {
		t.Fatalf("expected rendered block in reply, got %q", replier.texts[0])
	}
	// Without a profile resolver, the sender id is masked.
	if !strings.Contains(replier.texts[0], "Author: U12345...") {
		t.Fatalf("expected masked author in reply, got %q", replier.texts[0])
	}
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{}
	replier := &stubReplier{}
	server := newTestServer(provider, replier, Options{ChannelSecret: webhookSecret})

	body := textEventBody("Hello there")
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(line.SignatureHeader, line.Sign("wrong-secret", []byte(body)))
	rec := doRequest(server, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if provider.calls != 0 || replier.calls != 0 {
		t.Fatalf("expected no processing after rejection: provider=%d replier=%d", provider.calls, replier.calls)
	}
}

func TestHandleWebhookNoSecretFailsClosed(t *testing.T) {
	t.Parallel()

	server := newTestServer(&stubProvider{}, &stubReplier{}, Options{})

	body := textEventBody("Hello there")
	rec := doRequest(server, signedWebhookRequest("", body))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected fail-closed rejection, got %d", rec.Code)
	}
}

func TestHandleWebhookAllowUnsignedDevMode(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		resp: &translation.TranslateResponse{
			DetectedLanguage: "en",
			Translations:     map[string]string{"en": "hi", "fa": "سلام"},
		},
	}
	replier := &stubReplier{}
	server := newTestServer(provider, replier, Options{AllowUnsigned: true})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(textEventBody("Hello there")))
	rec := doRequest(server, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if replier.calls != 1 {
		t.Fatalf("expected one reply, got %d", replier.calls)
	}
}

func TestHandleWebhookInvalidEnvelopeAcknowledged(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{}
	server := newTestServer(provider, &stubReplier{}, Options{ChannelSecret: webhookSecret})

	body := `{"no_events_here":true}`
	rec := doRequest(server, signedWebhookRequest(webhookSecret, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected acknowledgement for invalid envelope, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"processed":0`) {
		t.Fatalf("expected zero processed events, body=%s", rec.Body.String())
	}
	if provider.calls != 0 {
		t.Fatalf("expected zero provider calls, got %d", provider.calls)
	}
}

func TestHandleWebhookSkipsNonTextEvents(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{}
	server := newTestServer(provider, &stubReplier{}, Options{ChannelSecret: webhookSecret})

	body := `{"events":[{"type":"follow","source":{"type":"user","userId":"U1"}}]}`
	rec := doRequest(server, signedWebhookRequest(webhookSecret, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if provider.calls != 0 {
		t.Fatalf("expected follow event to be skipped, calls=%d", provider.calls)
	}
}

func TestHandleWebhookSwallowsPerEventFailures(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		resp: &translation.TranslateResponse{
			DetectedLanguage: "en",
			Translations:     map[string]string{"en": "a", "fa": "b"},
		},
	}
	replier := &stubReplier{err: fmt.Errorf("reply rejected")}
	server := newTestServer(provider, replier, Options{ChannelSecret: webhookSecret})

	body := `{"events":[
		{"type":"message","replyToken":"t1","source":{"userId":"U1"},"message":{"type":"text","text":"one two three"}},
		{"type":"message","replyToken":"t2","source":{"userId":"U2"},"message":{"type":"text","text":"four five six"}}
	]}`
	rec := doRequest(server, signedWebhookRequest(webhookSecret, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected acknowledgement despite event failures, got %d", rec.Code)
	}
	if replier.calls != 2 {
		t.Fatalf("expected both events attempted, replies=%d", replier.calls)
	}
	if !strings.Contains(rec.Body.String(), `"processed":0`) {
		t.Fatalf("expected zero processed events, body=%s", rec.Body.String())
	}
}
