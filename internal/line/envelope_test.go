package line

import (
	"strings"
	"testing"
)

func TestParseEnvelope(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"destination": "U00000",
		"events": [
			{
				"type": "message",
				"replyToken": "token-1",
				"source": {"type": "user", "userId": "U12345"},
				"message": {"id": "m1", "type": "text", "text": "hello"}
			},
			{
				"type": "follow",
				"source": {"type": "user", "userId": "U67890"}
			}
		]
	}`)

	envelope, err := ParseEnvelope(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(envelope.Events) != 2 {
		t.Fatalf("unexpected event count: %d", len(envelope.Events))
	}
	if !envelope.Events[0].IsTextMessage() {
		t.Fatalf("expected first event to be a text message")
	}
	if envelope.Events[0].Message.Text != "hello" {
		t.Fatalf("unexpected message text: %q", envelope.Events[0].Message.Text)
	}
	if envelope.Events[0].Source.UserID != "U12345" {
		t.Fatalf("unexpected sender: %q", envelope.Events[0].Source.UserID)
	}
	if envelope.Events[1].IsTextMessage() {
		t.Fatalf("did not expect follow event to be a text message")
	}
}

func TestParseEnvelopeEmptyEvents(t *testing.T) {
	t.Parallel()

	envelope, err := ParseEnvelope([]byte(`{"events":[]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(envelope.Events) != 0 {
		t.Fatalf("expected zero events")
	}
}

func TestParseEnvelopeRejectsInvalidShapes(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty body":        ``,
		"not json":          `hello`,
		"missing events":    `{"destination":"U0"}`,
		"events not array":  `{"events":"nope"}`,
		"event not object":  `{"events":[42]}`,
		"event type absent": `{"events":[{"replyToken":"t"}]}`,
		"trailing content":  `{"events":[]}{"events":[]}`,
	}

	for name, raw := range cases {
		if _, err := ParseEnvelope([]byte(raw)); err == nil {
			t.Fatalf("expected %s to be rejected", name)
		}
	}
}

func TestParseEnvelopeErrorMentionsSchema(t *testing.T) {
	t.Parallel()

	_, err := ParseEnvelope([]byte(`{"events":[{"type":""}]}`))
	if err == nil {
		t.Fatalf("expected empty event type to be rejected")
	}
	if !strings.Contains(err.Error(), "schema") {
		t.Fatalf("expected schema validation error, got %v", err)
	}
}
