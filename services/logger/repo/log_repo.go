package repo

import (
	"context"
	"time"

	"radar/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionLogs   = "logs"
	CollectionEvents = "events"
)

// EventRecord는 events 컬렉션에 저장되는 도메인 이벤트입니다
type EventRecord struct {
	EventType  string    `bson:"event_type"`
	OccurredAt time.Time `bson:"occurred_at"`
	ReceivedAt time.Time `bson:"received_at"`
	Data       bson.M    `bson:"data,omitempty"`
}

type LogRepository struct {
	logs   *mongo.Collection
	events *mongo.Collection
}

func NewLogRepository(mongoClient *mongo.Client, database string) *LogRepository {
	db := mongoClient.Database(database)
	return &LogRepository{
		logs:   db.Collection(CollectionLogs),
		events: db.Collection(CollectionEvents),
	}
}

// InsertLog는 로그를 MongoDB에 저장합니다
func (r *LogRepository) InsertLog(ctx context.Context, log logger.BaseLog) error {
	_, err := r.logs.InsertOne(ctx, log)
	return err
}

// InsertEvent는 유저 이벤트를 MongoDB에 저장합니다
func (r *LogRepository) InsertEvent(ctx context.Context, record EventRecord) error {
	_, err := r.events.InsertOne(ctx, record)
	return err
}
