package kinesis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/kinesis"
)

// Dashboard event types
const (
	EventWidgetCreated   = "widget_created"
	EventWidgetDestroyed = "widget_destroyed"
	EventViewDestroyed   = "view_destroyed"
	EventThemeChanged    = "theme_changed"
	EventNoteSubmitted   = "note_submitted"
)

// KinesisAPI interface for mocking
type KinesisAPI interface {
	PutRecord(ctx context.Context, params *kinesis.PutRecordInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error)
}

// Streamer publishes dashboard events. A Streamer without a client drops
// every event, so callers never need to check whether streaming is enabled.
type Streamer struct {
	client     KinesisAPI
	streamName string
}

type DashboardEvent struct {
	EventType  string            `json:"event_type"`
	Timestamp  time.Time         `json:"timestamp"`
	ViewID     string            `json:"view_id,omitempty"`
	Handle     string            `json:"handle,omitempty"`
	EntityID   string            `json:"entity_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func NewStreamer(client KinesisAPI, streamName string) *Streamer {
	return &Streamer{
		client:     client,
		streamName: streamName,
	}
}

// Enabled reports whether events are sent anywhere
func (s *Streamer) Enabled() bool {
	return s != nil && s.client != nil && s.streamName != ""
}

// Publish sends event, partitioned by view. Failures are logged, never returned.
func (s *Streamer) Publish(ctx context.Context, event DashboardEvent) {
	if !s.Enabled() {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal dashboard event", "event_type", event.EventType, "error", err)
		return
	}

	partitionKey := event.ViewID
	if partitionKey == "" {
		partitionKey = event.EventType
	}

	_, err = s.client.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   &s.streamName,
		Data:         data,
		PartitionKey: &partitionKey,
	})

	if err != nil {
		slog.Error("Failed to stream dashboard event", "event_type", event.EventType, "view_id", event.ViewID, "error", err)
	} else {
		slog.Debug("Streamed dashboard event", "event_type", event.EventType, "view_id", event.ViewID)
	}
}
