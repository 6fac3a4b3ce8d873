package line

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed webhook.schema.json
var webhookSchemaJSON string

// Envelope is one inbound webhook delivery: zero or more events.
type Envelope struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// Event is one platform event. Only text-message events are acted on; the
// rest are skipped by the webhook loop.
type Event struct {
	Type       string       `json:"type"`
	ReplyToken string       `json:"replyToken"`
	Source     EventSource  `json:"source"`
	Message    EventMessage `json:"message"`
}

type EventSource struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

type EventMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// IsTextMessage reports whether the event carries a text message to relay.
func (e Event) IsTextMessage() bool {
	return e.Type == "message" && e.Message.Type == "text"
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// ParseEnvelope validates the raw webhook body against the envelope schema and
// decodes it. The body must be a single JSON document with no trailing
// content.
func ParseEnvelope(raw []byte) (*Envelope, error) {
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("decode webhook JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load webhook schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("webhook schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize webhook JSON: %w", err)
	}

	var envelope Envelope
	if err := json.Unmarshal(normalized, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal webhook envelope: %w", err)
	}
	return &envelope, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("webhook.schema.json", strings.NewReader(webhookSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, err := compiler.Compile("webhook.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}
		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("body is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("body contains trailing content")
	}
	return value, nil
}
