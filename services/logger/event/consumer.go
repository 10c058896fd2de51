package event

import (
	"fmt"
	"log"

	"radar/pkg/mq"
	eventtypes "radar/pkg/types/eventtype"
)

type Consumer struct {
	mqClient     *mq.RabbitMQ
	eventHandler *EventHandler
}

func NewConsumer(mqClient *mq.RabbitMQ, store LogStore) *Consumer {
	return &Consumer{
		mqClient:     mqClient,
		eventHandler: NewEventHandler(store),
	}
}

// StartListening은 log와 user_events exchange를 구독합니다
func (c *Consumer) StartListening() error {
	bindings := []struct {
		exchange string
		queue    string
		handlers mq.EventHandlerMap
	}{
		{
			exchange: mq.ExchangeLog,
			queue:    mq.QueueLog,
			handlers: mq.EventHandlerMap{eventtypes.EventTypeLog: c.eventHandler.HandleLogEvent},
		},
		{
			exchange: mq.ExchangeUserEvents,
			queue:    mq.QueueUserEventLog,
			handlers: mq.EventHandlerMap{eventtypes.EventTypeAny: c.eventHandler.HandleUserEvent},
		},
	}

	for _, b := range bindings {
		// Exchange 설정
		if err := c.mqClient.DeclareExchange(b.exchange, mq.ExchangeTypeFanout); err != nil {
			return fmt.Errorf("declare exchange %s: %w", b.exchange, err)
		}

		// Queue 생성 및 바인딩
		queue, err := c.mqClient.DeclareQueue(b.queue, b.exchange, []string{""})
		if err != nil {
			return fmt.Errorf("declare queue %s for %s: %w", b.queue, b.exchange, err)
		}

		// 메시지 소비 시작
		if err := c.mqClient.ConsumeMessages(queue.Name, b.handlers); err != nil {
			return fmt.Errorf("consume %s: %w", queue.Name, err)
		}
	}

	log.Println("✅ Logger Service Consumer Listening...")
	return nil
}
