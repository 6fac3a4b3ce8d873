package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/themultilangtranslator-png/multilang-translator/internal/translation"
)

const maxTranslateBodyBytes = 64 * 1024

type translateRequest struct {
	Author              string   `json:"author"`
	Text                string   `json:"text"`
	Languages           []string `json:"languages"`
	IncludeRenderedText *bool    `json:"include_rendered_text"`
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, err.Error())
	}

	author := req.Author
	if author == "" {
		author = "Unknown"
	}

	result, err := s.translator.Translate(c.Request().Context(), translation.Request{
		Author:    author,
		Text:      req.Text,
		Languages: req.Languages,
	})
	if err != nil {
		return s.translationError(c, err)
	}

	if req.IncludeRenderedText != nil && !*req.IncludeRenderedText {
		// Results are cached immutable; copy before dropping the block.
		trimmed := *result
		trimmed.RenderedText = ""
		return success(c, &trimmed)
	}
	return success(c, result)
}

func (s *Server) translationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, translation.ErrValidation):
		return failValidation(c, err.Error())
	case errors.Is(err, translation.ErrProviderUnavailable):
		return serverError(c, codeProviderUnavailable, "Translation provider is not configured")
	case errors.Is(err, translation.ErrMalformedResponse):
		s.logger.Error().Err(err).Msg("provider returned malformed response")
		return serverError(c, codeMalformedProviderResponse, "Translation provider returned an unusable response")
	case errors.Is(err, translation.ErrProvider):
		s.logger.Error().Err(err).Msg("provider call failed")
		return serverError(c, codeProviderError, "Translation provider call failed")
	default:
		s.logger.Error().Err(err).Msg("translation failed")
		return serverError(c, codeInternalError, "Internal server error")
	}
}

// decodeJSONBody decodes a single strict JSON document. Unknown fields and
// type mismatches (for example a non-string languages element) are validation
// errors, not silent drops.
func decodeJSONBody(c echo.Context, target any) error {
	body := http.MaxBytesReader(c.Response(), c.Request().Body, maxTranslateBodyBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body contains trailing content")
	}
	return nil
}
