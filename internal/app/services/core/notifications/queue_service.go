package notifications

import (
	"context"
	"fmt"
	"sync"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// QueueService manages the durable notification queue and its dead letter
// queue. Messages are persistent and every publish waits for a broker
// confirm.
type QueueService struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	dlqName   string
	prefetch  int
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

// QueuedItem is a fetched delivery and its decoded task.
type QueuedItem struct {
	DeliveryTag uint64
	Task        models.NotificationTask
}

func NewQueueService(conn *amqp.Connection, log *zap.Logger, queueName, dlqName string, prefetch int) (*QueueService, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		dlqName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &QueueService{
		ch:        ch,
		log:       log,
		queueName: queueName,
		dlqName:   dlqName,
		prefetch:  prefetch,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

// Enqueue publishes a task to the notification queue.
func (s *QueueService) Enqueue(ctx context.Context, task models.NotificationTask) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("QueueService.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTaskIDKey, task.ID),
	)
	return s.publish(ctx, s.queueName, task)
}

// Reenqueue publishes the (possibly modified) task back to the queue tail.
func (s *QueueService) Reenqueue(ctx context.Context, task models.NotificationTask) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("QueueService.Reenqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTaskIDKey, task.ID),
	)
	return s.publish(ctx, s.queueName, task)
}

// EnqueueToDeadQueue moves a task to the DLQ for operator inspection.
func (s *QueueService) EnqueueToDeadQueue(ctx context.Context, task models.NotificationTask) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("QueueService.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTaskIDKey, task.ID),
	)
	return s.publish(ctx, s.dlqName, task)
}

// FetchN retrieves up to n tasks using basic.get without auto-ack.
func (s *QueueService) FetchN(ctx context.Context, n int) ([]QueuedItem, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("QueueService.FetchN called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if n <= 0 {
		n = 1
	}
	items := make([]QueuedItem, 0, n)

	for i := 0; i < n; i++ {
		d, ok, err := s.ch.Get(s.queueName, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		var task models.NotificationTask
		if err := json.Unmarshal(d.Body, &task); err != nil {
			// Invalid JSON goes straight to DLQ to avoid a poison message loop.
			_ = d.Ack(false)
			_ = s.publishRaw(ctx, s.dlqName, d.Body)
			continue
		}
		items = append(items, QueuedItem{DeliveryTag: d.DeliveryTag, Task: task})
	}

	return items, nil
}

// AckMessage acknowledges a delivery so it is removed from the queue.
func (s *QueueService) AckMessage(deliveryTag uint64) error {
	return s.ch.Ack(deliveryTag, false)
}

func (s *QueueService) publish(ctx context.Context, queue string, task models.NotificationTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publishRaw(ctx, queue, body)
}

func (s *QueueService) publishRaw(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQNotConfirmed(fmt.Errorf("message not confirmed"), queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queue)
	}
	return nil
}
