// Package kafka relays committed object events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"fleetkernel/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
)

// ErrRelayQueueFull is returned when an event is dropped because the broker
// cannot keep up.
var ErrRelayQueueFull = errors.New("object event relay queue is full")

const (
	defaultQueueSize    = 1024
	defaultWriteTimeout = 5 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// RelayObserver counts relay outcomes.
type RelayObserver interface {
	RecordRelay(outcome string)
}

type noopRelayObserver struct{}

func (noopRelayObserver) RecordRelay(string) {}

// Relay outcomes reported to the observer.
const (
	OutcomePublished = "published"
	OutcomeDropped   = "dropped"
	OutcomeFailed    = "failed"
)

// ObjectEventRelay is a pool subscriber that publishes events without blocking
// the pool. OnObjectEvent encodes the event and queues it; a single goroutine
// writes queued messages in order through a circuit breaker. When the queue is
// full the event is dropped and logged.
//
// Messages are keyed by commit id, so every event of one transfer lands on the
// same partition in record order. Events of different commits may land on
// different partitions; consumers order those by the ce-time header.
type ObjectEventRelay struct {
	writer   messageWriter
	breaker  *gobreaker.CircuitBreaker
	observer RelayObserver
	logger   *slog.Logger

	queue chan kafka.Message
	stop  chan struct{}
	wg    sync.WaitGroup
	now   func() time.Time
}

var _ ports.ObjectEventSubscriber = (*ObjectEventRelay)(nil)

// NewObjectEventRelay creates a relay writing to topic on brokers.
func NewObjectEventRelay(brokers []string, topic string, observer RelayObserver, logger *slog.Logger) *ObjectEventRelay {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return newObjectEventRelay(writer, defaultQueueSize, observer, logger)
}

func newObjectEventRelay(writer messageWriter, queueSize int, observer RelayObserver, logger *slog.Logger) *ObjectEventRelay {
	if observer == nil {
		observer = noopRelayObserver{}
	}
	logger = logger.With("component", "object_event_relay")

	return &ObjectEventRelay{
		writer:   writer,
		breaker:  newBreaker(logger),
		observer: observer,
		logger:   logger,
		queue:    make(chan kafka.Message, queueSize),
		stop:     make(chan struct{}),
		now:      time.Now,
	}
}

func newBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "kafka-object-events",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// OnObjectEvent queues event for publication. It never blocks.
func (r *ObjectEventRelay) OnObjectEvent(ctx context.Context, event ports.ObjectEvent) error {
	ce := newCloudEvent(event, r.now())
	payload, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("failed to marshal object event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(messageKey(ce)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "ce-specversion", Value: []byte(ce.SpecVersion)},
			{Key: "ce-type", Value: []byte(ce.Type)},
			{Key: "ce-source", Value: []byte(ce.Source)},
			{Key: "ce-id", Value: []byte(ce.ID)},
			{Key: "ce-time", Value: []byte(ce.Time.Format(time.RFC3339Nano))},
			{Key: "ce-subject", Value: []byte(ce.Subject)},
			{Key: "content-type", Value: []byte(ce.DataContentType)},
		},
		Time: ce.Time,
	}
	if ce.CommitID != "" {
		msg.Headers = append(msg.Headers,
			kafka.Header{Key: "ce-commitid", Value: []byte(ce.CommitID)},
			kafka.Header{Key: "ce-sequence", Value: []byte(strconv.Itoa(ce.Sequence))},
		)
	}

	select {
	case r.queue <- msg:
		return nil
	default:
		r.observer.RecordRelay(OutcomeDropped)
		r.logger.WarnContext(ctx, "Object event dropped", "subject", ce.Subject, "type", ce.Type)
		return ErrRelayQueueFull
	}
}

// messageKey falls back to the object id for events published outside a commit.
func messageKey(ce CloudEvent) string {
	if ce.CommitID != "" {
		return ce.CommitID
	}
	return ce.Subject
}

// Start launches the writer goroutine.
func (r *ObjectEventRelay) Start() {
	r.wg.Add(1)
	go r.run()
}

// Close drains the queue, stops the writer and closes the connection.
func (r *ObjectEventRelay) Close() error {
	close(r.stop)
	r.wg.Wait()
	return r.writer.Close()
}

func (r *ObjectEventRelay) run() {
	defer r.wg.Done()
	for {
		select {
		case msg := <-r.queue:
			r.publish(msg)
		case <-r.stop:
			for {
				select {
				case msg := <-r.queue:
					r.publish(msg)
				default:
					return
				}
			}
		}
	}
}

func (r *ObjectEventRelay) publish(msg kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultWriteTimeout)
	defer cancel()

	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		r.observer.RecordRelay(OutcomeFailed)
		r.logger.ErrorContext(ctx, "Failed to publish object event",
			"key", string(msg.Key),
			"breaker", r.breaker.State().String(),
			"error", err)
		return
	}
	r.observer.RecordRelay(OutcomePublished)
}
