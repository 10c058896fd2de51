package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"radar/pkg/logger"
	"radar/pkg/mq"
	eventtypes "radar/pkg/types/eventtype"
	"radar/services/logger/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogStore struct {
	logs   []logger.BaseLog
	events []repo.EventRecord
	err    error
}

func (m *mockLogStore) InsertLog(_ context.Context, log logger.BaseLog) error {
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockLogStore) InsertEvent(_ context.Context, record repo.EventRecord) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, record)
	return nil
}

func envelope(t *testing.T, eventType string, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	body, err := json.Marshal(eventtypes.EventPayload{
		EventType:  eventType,
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Data:       raw,
	})
	require.NoError(t, err)
	return body
}

func TestHandleLogEvent(t *testing.T) {
	store := &mockLogStore{}
	h := NewEventHandler(store)

	body := envelope(t, eventtypes.EventTypeLog, logger.BaseLog{
		Level:        "info",
		Service:      int(logger.ServiceTypeUser),
		LogEventType: int(logger.LogEventPreferencesUpdate),
		Message:      "Preferences updated",
	})
	require.True(t, mq.Dispatch(body, mq.EventHandlerMap{eventtypes.EventTypeLog: h.HandleLogEvent}))

	require.Len(t, store.logs, 1)
	assert.Equal(t, "Preferences updated", store.logs[0].Message)
	assert.Equal(t, int(logger.ServiceTypeUser), store.logs[0].Service)
}

func TestHandleLogEvent_MalformedIsDropped(t *testing.T) {
	store := &mockLogStore{}
	NewEventHandler(store).HandleLogEvent(json.RawMessage(`{"level":`))
	assert.Empty(t, store.logs)
}

func TestHandleUserEvent(t *testing.T) {
	store := &mockLogStore{}
	h := NewEventHandler(store)
	received := time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC)
	h.now = func() time.Time { return received }

	body := envelope(t, eventtypes.EventTypeUserPreferencesUpdated, eventtypes.UserEvent{
		UserID:  3,
		ActorID: 3,
		Fields:  []string{"radius"},
	})
	require.True(t, mq.Dispatch(body, mq.EventHandlerMap{eventtypes.EventTypeAny: h.HandleUserEvent}))

	require.Len(t, store.events, 1)
	record := store.events[0]
	assert.Equal(t, eventtypes.EventTypeUserPreferencesUpdated, record.EventType)
	assert.Equal(t, received, record.ReceivedAt)
	assert.True(t, record.OccurredAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	assert.EqualValues(t, 3, record.Data["user_id"])
}

func TestHandleUserEvent_StoreFailure(t *testing.T) {
	store := &mockLogStore{err: errors.New("mongo down")}
	h := NewEventHandler(store)

	assert.NotPanics(t, func() {
		h.HandleUserEvent(envelope(t, eventtypes.EventTypeInterestDeleted, eventtypes.InterestEvent{InterestID: "i-1"}))
	})
	assert.Empty(t, store.events)
}
