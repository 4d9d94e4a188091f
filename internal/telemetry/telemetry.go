// Package telemetry reports anonymous run metrics. It is entirely
// optional: without an API key every call is a no-op, so callers never
// need to branch.
package telemetry

import (
	"log"

	"github.com/google/uuid"
	"github.com/posthog/posthog-go"
)

// Tracker wraps the analytics client behind nil-safe methods.
type Tracker struct {
	client     posthog.Client
	distinctID string
}

// New creates a tracker. An empty API key yields a disabled tracker; a
// client initialization failure is logged and also yields a disabled
// tracker rather than an error, since analytics must never block a run.
func New(apiKey, endpoint string) *Tracker {
	t := &Tracker{distinctID: uuid.NewString()}
	if apiKey == "" {
		return t
	}

	cfg := posthog.Config{}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	client, err := posthog.NewWithConfig(apiKey, cfg)
	if err != nil {
		log.Printf("[Telemetry] failed to initialize client: %v", err)
		return t
	}
	t.client = client
	return t
}

// Track enqueues one event with its properties. No-op when disabled.
func (t *Tracker) Track(event string, properties map[string]interface{}) {
	if t == nil || t.client == nil {
		return
	}
	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}
	if err := t.client.Enqueue(posthog.Capture{
		DistinctId: t.distinctID,
		Event:      event,
		Properties: props,
	}); err != nil {
		log.Printf("[Telemetry] failed to enqueue event %s: %v", event, err)
	}
}

// Close flushes pending events. No-op when disabled.
func (t *Tracker) Close() {
	if t == nil || t.client == nil {
		return
	}
	if err := t.client.Close(); err != nil {
		log.Printf("[Telemetry] failed to close client: %v", err)
	}
}
