package logger

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"radar/pkg/helper"
	"radar/pkg/mq"

	eventtypes "radar/pkg/types/eventtype"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// Logger는 전역 로거 인스턴스
	Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	// publisher가 설정되면 로그를 log exchange로도 발행합니다
	publisher   mq.Publisher
	publisherMu sync.RWMutex

	// currentService는 현재 서비스 타입을 저장합니다
	currentService ServiceType
)

const (
	ServiceTypeGateway ServiceType = iota
	ServiceTypeAuth
	ServiceTypeUser
	ServiceTypeLogger
)

// ServiceType은 서비스 타입을 나타내는 정수입니다
type ServiceType int

func (s ServiceType) String() string {
	switch s {
	case ServiceTypeGateway:
		return "gateway"
	case ServiceTypeAuth:
		return "auth"
	case ServiceTypeUser:
		return "user"
	case ServiceTypeLogger:
		return "logger"
	default:
		return "unknown"
	}
}

const (
	// 인증 관련 이벤트
	LogEventRegister LogEventType = iota
	LogEventLogin
	LogEventLoginFail
	LogEventLogout

	// 유저 관련 이벤트
	LogEventUserUpdate
	LogEventUserDelete
	LogEventPreferencesUpdate
	LogEventPasswordChange
	LogEventNearbySearch

	// 관심사 관련 이벤트
	LogEventInterestChange

	// 요청 로그
	LogEventRequest

	// 경고 이벤트
	LogEventWarning

	// 에러 이벤트
	LogEventError
)

// LogEventType은 로그 이벤트 타입을 나타내는 정수입니다
type LogEventType int

// BaseLog는 로그의 기본 구조를 정의합니다
type BaseLog struct {
	Level        string      `json:"level" bson:"level"`
	Timestamp    time.Time   `json:"timestamp" bson:"timestamp"`
	Service      int         `json:"service" bson:"service"`
	LogEventType int         `json:"log_event_type" bson:"log_event_type"`
	Message      string      `json:"message" bson:"message"`
	Log          interface{} `json:"log" bson:"log"`
}

// InitLogger는 로거를 초기화합니다
func InitLogger(serviceType ServiceType, level string) {
	InitLoggerWithWriter(serviceType, level, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

// InitLoggerWithWriter는 출력 대상을 지정해 로거를 초기화합니다
func InitLoggerWithWriter(serviceType ServiceType, level string, output io.Writer) {
	currentService = serviceType

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	// 로그 포맷 설정
	zerolog.TimeFieldFormat = time.RFC3339

	// 로거 설정
	Logger = zerolog.New(output).
		Level(lvl).
		With().
		Str("service", serviceType.String()).
		Timestamp().
		Logger()

	// helper 등 zerolog 전역 로거를 쓰는 곳도 같은 설정을 사용
	log.Logger = Logger
}

// AttachPublisher는 로그를 RabbitMQ로도 발행하도록 설정합니다
func AttachPublisher(p mq.Publisher) {
	publisherMu.Lock()
	defer publisherMu.Unlock()
	publisher = p
}

// Log는 BaseLog 구조체와 동일한 형식으로 로그를 출력합니다
func Log(level string, logEventType LogEventType, message string, logData interface{}) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	Logger.WithLevel(lvl).
		Int("log_event_type", int(logEventType)).
		Interface("log", logData).
		Msg(message)

	publisherMu.RLock()
	p := publisher
	publisherMu.RUnlock()
	if p == nil || lvl < Logger.GetLevel() {
		return
	}

	// BaseLog 구조체 생성
	baseLog := BaseLog{
		Level:        lvl.String(),
		Timestamp:    time.Now(),
		Service:      int(currentService),
		LogEventType: int(logEventType),
		Message:      message,
		Log:          logData,
	}

	eventPayload := eventtypes.EventPayload{
		EventType:  eventtypes.EventTypeLog,
		OccurredAt: baseLog.Timestamp,
		Data:       helper.ToJSON(baseLog),
	}

	// JSON으로 변환
	jsonData, err := json.Marshal(eventPayload)
	if err != nil {
		Logger.Error().Err(err).Msg("Failed to marshal log data")
		return
	}

	// RabbitMQ로 발행
	if err := p.PublishMessage(mq.ExchangeLog, "", jsonData); err != nil {
		Logger.Error().Err(err).Msg("Failed to publish log message")
	}
}

// Debug는 debug 레벨 로그를 출력합니다
func Debug(logEventType LogEventType, message string, logData interface{}) {
	Log("debug", logEventType, message, logData)
}

// Info는 info 레벨 로그를 출력합니다
func Info(logEventType LogEventType, message string, logData interface{}) {
	Log("info", logEventType, message, logData)
}

// Warn은 warn 레벨 로그를 출력합니다
func Warn(logEventType LogEventType, message string, logData interface{}) {
	Log("warn", logEventType, message, logData)
}

// Error는 error 레벨 로그를 출력합니다
func Error(logEventType LogEventType, message string, logData interface{}) {
	Log("error", logEventType, message, logData)
}
