package mq

import (
	"encoding/json"
	"log"

	eventtypes "radar/pkg/types/eventtype"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher는 메시지 발행 기능만 필요한 곳에서 사용합니다
type Publisher interface {
	PublishMessage(exchange, routingKey string, body []byte) error
}

// EventHandlerMap: 이벤트 타입별 핸들러
type EventHandlerMap map[string]func(json.RawMessage)

type RabbitMQ struct {
	Conn    *amqp.Connection
	channel *amqp.Channel
}

// ConnectToRabbitMQ: RabbitMQ 연결 설정
func ConnectToRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("❌ Failed to connect to RabbitMQ: %v", err)
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("❌ Failed to open RabbitMQ channel: %v", err)
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{Conn: conn, channel: ch}, nil
}

// Close: 채널과 연결 종료
func (mq *RabbitMQ) Close() error {
	if mq.channel != nil {
		mq.channel.Close()
	}
	return mq.Conn.Close()
}

// DeclareExchange: Exchange 생성
func (mq *RabbitMQ) DeclareExchange(name, exchangeType string) error {
	return mq.channel.ExchangeDeclare(
		name,         // exchange name
		exchangeType, // type: topic or fanout
		true,         // durable
		false,        // autoDelete
		false,        // internal
		false,        // noWait
		nil,          // arguments
	)
}

// DeclareQueue: Queue 생성 및 바인딩
func (mq *RabbitMQ) DeclareQueue(queueName, exchangeName string, routingKeys []string) (amqp.Queue, error) {
	queue, err := mq.channel.QueueDeclare(
		queueName, // queue name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // arguments
	)
	if err != nil {
		return queue, err
	}

	// Exchange와 Queue 바인딩
	for _, routingKey := range routingKeys {
		err = mq.channel.QueueBind(
			queue.Name,   // queue name
			routingKey,   // routing key
			exchangeName, // exchange name
			false,        // noWait
			nil,          // arguments
		)
		if err != nil {
			return queue, err
		}
	}

	return queue, nil
}

// PublishMessage: 메시지 발행
func (mq *RabbitMQ) PublishMessage(exchange, routingKey string, body []byte) error {
	return mq.channel.Publish(
		exchange,   // exchange name
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// ConsumeMessages: 메시지 소비. EventPayload의 event_type으로 핸들러를 찾음
func (mq *RabbitMQ) ConsumeMessages(queueName string, handlers EventHandlerMap) error {
	msgs, err := mq.channel.Consume(
		queueName, // queue name
		"",        // consumer
		true,      // autoAck
		false,     // exclusive
		false,     // noLocal
		false,     // noWait
		nil,       // arguments
	)
	if err != nil {
		return err
	}

	// 메시지 처리
	go func() {
		for msg := range msgs {
			Dispatch(msg.Body, handlers)
		}
	}()
	return nil
}

// Dispatch: 메시지 본문을 해당 이벤트 핸들러로 전달
func Dispatch(body []byte, handlers EventHandlerMap) bool {
	var payload eventtypes.EventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("❌ Failed to unmarshal event payload: %v", err)
		return false
	}

	handler, ok := handlers[payload.EventType]
	if !ok {
		if fallback, ok := handlers[eventtypes.EventTypeAny]; ok {
			fallback(body)
			return true
		}
		log.Printf("⚠️ No handler for event type %s", payload.EventType)
		return false
	}

	handler(payload.Data)
	return true
}
