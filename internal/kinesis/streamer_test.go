package kinesis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockKinesisClient mocks the Kinesis client
type MockKinesisClient struct {
	mock.Mock
}

func (m *MockKinesisClient) PutRecord(ctx context.Context, params *kinesis.PutRecordInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*kinesis.PutRecordOutput), args.Error(1)
}

func TestStreamer_Publish(t *testing.T) {
	mockClient := new(MockKinesisClient)
	streamer := NewStreamer(mockClient, "dashboard-events")

	mockClient.On("PutRecord", mock.Anything, mock.MatchedBy(func(input *kinesis.PutRecordInput) bool {
		var event DashboardEvent
		if err := json.Unmarshal(input.Data, &event); err != nil {
			return false
		}
		return *input.StreamName == "dashboard-events" &&
			*input.PartitionKey == "truck-T001" &&
			event.EventType == EventWidgetCreated &&
			event.Handle == "h-1" &&
			!event.Timestamp.IsZero()
	})).Return(&kinesis.PutRecordOutput{}, nil)

	streamer.Publish(context.Background(), DashboardEvent{
		EventType: EventWidgetCreated,
		ViewID:    "truck-T001",
		Handle:    "h-1",
	})

	mockClient.AssertExpectations(t)
}

func TestStreamer_PartitionByEventTypeWithoutView(t *testing.T) {
	mockClient := new(MockKinesisClient)
	streamer := NewStreamer(mockClient, "dashboard-events")

	mockClient.On("PutRecord", mock.Anything, mock.MatchedBy(func(input *kinesis.PutRecordInput) bool {
		return *input.PartitionKey == EventThemeChanged
	})).Return(&kinesis.PutRecordOutput{}, nil)

	streamer.Publish(context.Background(), DashboardEvent{EventType: EventThemeChanged})

	mockClient.AssertExpectations(t)
}

func TestStreamer_ErrorIsSwallowed(t *testing.T) {
	mockClient := new(MockKinesisClient)
	streamer := NewStreamer(mockClient, "dashboard-events")

	mockClient.On("PutRecord", mock.Anything, mock.Anything).
		Return((*kinesis.PutRecordOutput)(nil), errors.New("throttled"))

	assert.NotPanics(t, func() {
		streamer.Publish(context.Background(), DashboardEvent{EventType: EventNoteSubmitted, EntityID: "D001"})
	})
	mockClient.AssertExpectations(t)
}

func TestStreamer_Disabled(t *testing.T) {
	var nilStreamer *Streamer
	assert.False(t, nilStreamer.Enabled())
	assert.NotPanics(t, func() {
		nilStreamer.Publish(context.Background(), DashboardEvent{EventType: EventThemeChanged})
	})

	streamer := NewStreamer(nil, "")
	assert.False(t, streamer.Enabled())
	streamer.Publish(context.Background(), DashboardEvent{EventType: EventThemeChanged})
}
