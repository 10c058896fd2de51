package event

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"radar/pkg/logger"
	eventtypes "radar/pkg/types/eventtype"
	"radar/services/logger/repo"

	"go.mongodb.org/mongo-driver/bson"
)

const writeTimeout = 5 * time.Second

// LogStore는 로그와 이벤트 저장소입니다
type LogStore interface {
	InsertLog(ctx context.Context, log logger.BaseLog) error
	InsertEvent(ctx context.Context, record repo.EventRecord) error
}

type EventHandler struct {
	store LogStore
	now   func() time.Time
}

func NewEventHandler(store LogStore) *EventHandler {
	return &EventHandler{store: store, now: time.Now}
}

// HandleLogEvent는 로그 이벤트를 처리합니다
func (e *EventHandler) HandleLogEvent(payload json.RawMessage) {
	var baseLog logger.BaseLog
	if err := json.Unmarshal(payload, &baseLog); err != nil {
		log.Printf("❌ Failed to unmarshal log event: %v", err)
		return
	}

	// MongoDB에 로그 저장
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := e.store.InsertLog(ctx, baseLog); err != nil {
		log.Printf("❌ Failed to insert log: %v", err)
	}
}

// HandleUserEvent는 user_events exchange의 메시지 전체(envelope)를 받아 저장합니다
func (e *EventHandler) HandleUserEvent(body json.RawMessage) {
	var payload eventtypes.EventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("❌ Failed to unmarshal user event: %v", err)
		return
	}

	record := repo.EventRecord{
		EventType:  payload.EventType,
		OccurredAt: payload.OccurredAt,
		ReceivedAt: e.now().UTC(),
	}
	if len(payload.Data) > 0 && string(payload.Data) != "null" {
		var data bson.M
		if err := bson.UnmarshalExtJSON(payload.Data, false, &data); err != nil {
			log.Printf("❌ Failed to convert event data for %s: %v", payload.EventType, err)
			return
		}
		record.Data = data
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := e.store.InsertEvent(ctx, record); err != nil {
		log.Printf("❌ Failed to insert event %s: %v", payload.EventType, err)
	}
}
