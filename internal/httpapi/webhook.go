package httpapi

import (
	"context"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/themultilangtranslator-png/multilang-translator/internal/line"
	"github.com/themultilangtranslator-png/multilang-translator/internal/translation"
)

// handleWebhook receives chat-platform event pushes. Signature verification
// fails closed: with no channel secret configured every delivery is rejected
// unless the explicit development fail-open flag is set. Once the signature
// passes, the endpoint always acknowledges with 200 regardless of per-event
// outcomes.
func (s *Server) handleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return failValidation(c, "failed to read request body")
	}

	if !s.webhookAuthorized(body, c.Request().Header.Get(line.SignatureHeader)) {
		s.logger.Warn().Msg("webhook signature rejected")
		return failAuthentication(c, "invalid webhook signature")
	}

	envelope, err := line.ParseEnvelope(body)
	if err != nil {
		// The platform retries non-2xx deliveries; a permanently malformed
		// body would retry forever, so acknowledge and skip it.
		s.logger.Warn().Err(err).Msg("webhook envelope rejected")
		return success(c, map[string]any{"processed": 0})
	}

	processed := 0
	for _, event := range envelope.Events {
		if !event.IsTextMessage() {
			continue
		}
		if err := s.processWebhookEvent(c.Request().Context(), event); err != nil {
			s.logger.Error().
				Err(err).
				Str("user_id", event.Source.UserID).
				Msg("webhook event failed")
			continue
		}
		processed++
	}

	return success(c, map[string]any{"processed": processed})
}

func (s *Server) webhookAuthorized(body []byte, signature string) bool {
	if s.opts.ChannelSecret == "" {
		if s.opts.AllowUnsigned {
			s.logger.Warn().Msg("accepting unsigned webhook (development mode)")
			return true
		}
		return false
	}
	return line.ValidateSignature(s.opts.ChannelSecret, body, signature)
}

// processWebhookEvent is one isolated unit of work: resolve the sender's
// display name, translate into the default languages, and relay the rendered
// block back through the reply token.
func (s *Server) processWebhookEvent(ctx context.Context, event line.Event) error {
	author := "Unknown"
	if s.profiles != nil {
		author = s.profiles.DisplayName(ctx, event.Source.UserID)
	}

	result, err := s.translator.Translate(ctx, translation.Request{
		Author: author,
		Text:   event.Message.Text,
	})
	if err != nil {
		return fmt.Errorf("translate webhook message: %w", err)
	}

	if s.replier == nil {
		return fmt.Errorf("no reply client configured")
	}
	if err := s.replier.Reply(ctx, event.ReplyToken, result.RenderedText); err != nil {
		return fmt.Errorf("relay reply: %w", err)
	}
	return nil
}
