package eventtypes

import (
	"encoding/json"
	"time"
)

type EventPayload struct {
	EventType  string          `json:"event_type" bson:"event_type"`
	OccurredAt time.Time       `json:"occurred_at" bson:"occurred_at"`
	Data       json.RawMessage `json:"data" bson:"-"`
}

// Event Types
const (
	EventTypeLog = "log"

	EventTypeUserRegistered         = "user.registered"
	EventTypeUserUpdated            = "user.updated"
	EventTypeUserDeleted            = "user.deleted"
	EventTypeUserPreferencesUpdated = "user.preferences.updated"
	EventTypeUserPasswordChanged    = "user.password.changed"
	EventTypeUserInterestsUpdated   = "user.interests.updated"

	EventTypeInterestCreated = "interest.created"
	EventTypeInterestUpdated = "interest.updated"
	EventTypeInterestDeleted = "interest.deleted"

	// EventTypeAny는 등록되지 않은 모든 이벤트를 받는 핸들러 키입니다
	EventTypeAny = "*"
)

// UserEvent는 유저 관련 이벤트의 공통 데이터입니다
type UserEvent struct {
	UserID  int      `json:"user_id" bson:"user_id"`
	ActorID int      `json:"actor_id" bson:"actor_id"`
	Fields  []string `json:"fields,omitempty" bson:"fields,omitempty"`
}

type InterestEvent struct {
	InterestID string `json:"interest_id" bson:"interest_id"`
	Name       string `json:"name" bson:"name"`
	ActorID    int    `json:"actor_id" bson:"actor_id"`
}
