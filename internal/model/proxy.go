// Package model defines shared types for the proxy.
package model

import (
	"context"
	"encoding/json"
)

// ChatRequest is an inbound chat-completion call to be relayed upstream.
// Payload is opaque: it is never decoded, validated or re-encoded.
type ChatRequest struct {
	Ctx     context.Context
	Payload json.RawMessage
}

// ChatResponse is the upstream reply, relayed to the caller unchanged.
type ChatResponse struct {
	StatusCode int
	Body       []byte
}

// ErrorEnvelope is the JSON body returned for every locally generated failure.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
