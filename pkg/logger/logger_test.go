package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	eventtypes "radar/pkg/types/eventtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	body     []byte
}

type fakePublisher struct {
	messages []published
	err      error
}

func (f *fakePublisher) PublishMessage(exchange, routingKey string, body []byte) error {
	f.messages = append(f.messages, published{exchange: exchange, body: body})
	return f.err
}

func TestLog_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(ServiceTypeUser, "info", &buf)
	AttachPublisher(nil)

	Info(LogEventNearbySearch, "nearby search", map[string]int{"count": 2})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "user", line["service"])
	assert.Equal(t, "nearby search", line["message"])
	assert.Equal(t, float64(LogEventNearbySearch), line["log_event_type"])
}

func TestLog_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(ServiceTypeAuth, "warn", &buf)

	pub := &fakePublisher{}
	AttachPublisher(pub)
	defer AttachPublisher(nil)

	Info(LogEventLogin, "login", nil)
	assert.Empty(t, buf.String())
	assert.Empty(t, pub.messages)

	Warn(LogEventLoginFail, "login failed", nil)
	assert.NotEmpty(t, buf.String())
	assert.Len(t, pub.messages, 1)
}

func TestLog_PublishesBaseLog(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(ServiceTypeUser, "debug", &buf)

	pub := &fakePublisher{}
	AttachPublisher(pub)
	defer AttachPublisher(nil)

	Error(LogEventError, "db down", map[string]string{"op": "find"})

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "log", pub.messages[0].exchange)

	var payload eventtypes.EventPayload
	require.NoError(t, json.Unmarshal(pub.messages[0].body, &payload))
	assert.Equal(t, eventtypes.EventTypeLog, payload.EventType)

	var base BaseLog
	require.NoError(t, json.Unmarshal(payload.Data, &base))
	assert.Equal(t, "error", base.Level)
	assert.Equal(t, int(ServiceTypeUser), base.Service)
	assert.Equal(t, "db down", base.Message)
}

func TestLog_PublishFailureDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(ServiceTypeUser, "info", &buf)

	AttachPublisher(&fakePublisher{err: errors.New("channel closed")})
	defer AttachPublisher(nil)

	assert.NotPanics(t, func() { Info(LogEventRequest, "request", nil) })
	assert.Contains(t, buf.String(), "Failed to publish log message")
}

func TestInitLogger_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(ServiceTypeGateway, "loud", &buf)

	Debug(LogEventRequest, "hidden", nil)
	assert.Empty(t, buf.String())
}
