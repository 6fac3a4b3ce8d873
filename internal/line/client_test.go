package line

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientReply(t *testing.T) {
	t.Parallel()

	var gotAuth, gotToken, gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/bot/message/reply" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var req replyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode reply request: %v", err)
		}
		gotToken = req.ReplyToken
		if len(req.Messages) == 1 {
			gotText = req.Messages[0].Text
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "channel-token", 5*time.Second)
	if err := client.Reply(context.Background(), "reply-1", "bonjour"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer channel-token" {
		t.Fatalf("unexpected authorization: %q", gotAuth)
	}
	if gotToken != "reply-1" {
		t.Fatalf("unexpected reply token: %q", gotToken)
	}
	if gotText != "bonjour" {
		t.Fatalf("unexpected message text: %q", gotText)
	}
}

func TestClientReplyStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, "channel-token", 5*time.Second)
	if err := client.Reply(context.Background(), "reply-1", "text"); err == nil {
		t.Fatalf("expected error for non-2xx reply status")
	}
}

func TestClientReplyRequiresToken(t *testing.T) {
	t.Parallel()

	client := NewClient("", "", 5*time.Second)
	if err := client.Reply(context.Background(), "reply-1", "text"); err == nil {
		t.Fatalf("expected error when channel token is missing")
	}
}

func TestClientGetProfile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/bot/profile/U12345" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Profile{UserID: "U12345", DisplayName: "Alice"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "channel-token", 5*time.Second)
	profile, err := client.GetProfile(context.Background(), "U12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.DisplayName != "Alice" {
		t.Fatalf("unexpected display name: %q", profile.DisplayName)
	}
}

func TestClientGetProfileStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "channel-token", 5*time.Second)
	if _, err := client.GetProfile(context.Background(), "U404"); err == nil {
		t.Fatalf("expected error for non-2xx profile status")
	}
}
