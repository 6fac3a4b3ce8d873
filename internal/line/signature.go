// Package line owns the chat-platform contract: webhook signature validation,
// envelope parsing, and the outbound reply/profile client.
package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignatureHeader is the request header carrying the webhook signature.
const SignatureHeader = "X-Line-Signature"

// ValidateSignature checks an inbound webhook body against its signature
// header: HMAC-SHA256 over the exact raw bytes, keyed with the channel secret,
// base64-encoded. The comparison is constant-time. An empty secret always
// fails; the development fail-open escape hatch lives with the caller, not
// here.
func ValidateSignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the signature the platform would send for body. Used by tests
// and local tooling.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
