// Package events defines the domain events emitted when leads and brokers
// change, and the handlers that react to them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
)

// Routing keys.
const (
	RKLeadCreated   = "lead.created"
	RKLeadUpdated   = "lead.updated"
	RKLeadsImported = "leads.imported"
	RKImportFailed  = "leads.import_failed"
	RKBrokerCreated = "broker.created"
)

// Bindings are the routing patterns the notification queue subscribes to.
var Bindings = []string{"lead.*", "leads.*", "broker.*"}

type LeadCreated struct {
	LeadID int64  `json:"lead_id"`
	Name   string `json:"name"`
	Source string `json:"source,omitempty"`
}

type LeadUpdated struct {
	LeadID int64  `json:"lead_id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

type LeadsImported struct {
	BatchID  string `json:"batch_id"`
	Filename string `json:"filename"`
	Count    int    `json:"count"`
}

type ImportFailed struct {
	BatchID  string `json:"batch_id"`
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

type BrokerCreated struct {
	BrokerID int64  `json:"broker_id"`
	Name     string `json:"name"`
}

// Publisher emits an event under a routing key.
type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
}

// Handler consumes a raw event body.
type Handler interface {
	Handle(ctx context.Context, key string, body []byte) error
}

// DecodeError marks a payload that can never be processed. Consumers drop
// such messages instead of retrying them.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode payload failed: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode unmarshals an event body into T.
func Decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, &DecodeError{Err: err}
	}
	return t, nil
}

// Direct delivers events synchronously to a Handler in the same process.
// It is used when no message broker is configured.
type Direct struct {
	h Handler
}

func NewDirect(h Handler) *Direct {
	return &Direct{h: h}
}

func (d *Direct) Publish(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return d.h.Handle(ctx, key, b)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, string, any) error { return nil }
