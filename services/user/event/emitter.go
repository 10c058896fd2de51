package event

import (
	"encoding/json"
	"time"

	"radar/pkg/mq"
	eventtypes "radar/pkg/types/eventtype"

	"github.com/rs/zerolog/log"
)

// Emitter는 도메인 이벤트를 user_events exchange로 발행합니다
type Emitter struct {
	publisher mq.Publisher
	exchange  string
	now       func() time.Time
}

func NewEmitter(publisher mq.Publisher) *Emitter {
	return &Emitter{
		publisher: publisher,
		exchange:  mq.ExchangeUserEvents,
		now:       time.Now,
	}
}

// Emit: 이벤트 발행. 실패는 로그만 남김
func (e *Emitter) Emit(eventType string, data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("❌ Failed to marshal event data")
		return
	}

	body, err := json.Marshal(eventtypes.EventPayload{
		EventType:  eventType,
		OccurredAt: e.now().UTC(),
		Data:       raw,
	})
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("❌ Failed to marshal event payload")
		return
	}

	if err := e.publisher.PublishMessage(e.exchange, eventType, body); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("❌ Failed to publish event")
	}
}

// NoopEmitter는 RabbitMQ가 설정되지 않았을 때 사용됩니다
type NoopEmitter struct{}

func (NoopEmitter) Emit(string, interface{}) {}
