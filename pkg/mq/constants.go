package mq

// Exchange Names
const (
	ExchangeUserEvents = "user_events"
	ExchangeLog        = "log"
)

// Exchange Types
const (
	ExchangeTypeFanout = "fanout"
)

// Queue Names
const (
	QueueUserEventLog = "user_event_log_queue"
	QueueLog          = "log_queue"
)
