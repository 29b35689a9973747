// Package outbox buffers roster events in memory and delivers them to Kafka.
package outbox

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	// ErrQueueFull is returned by Publish when the in-memory buffer is exhausted.
	ErrQueueFull = errors.New("roster event queue full")
	// ErrInvalidPayload is returned by Publish when a payload fails schema validation.
	ErrInvalidPayload = errors.New("roster event payload invalid")
)

const shutdownFlushTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

// SchemaRegistrar resolves the Schema Registry ID for a subject.
type SchemaRegistrar interface {
	EnsureSchema(context.Context, string, string) (int, error)
}

// DispatcherConfig contains tunables for the Dispatcher.
type DispatcherConfig struct {
	Topic         string
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

// Dispatcher queues roster events and delivers them to Kafka in batches using
// Schema Registry wire framing.
type Dispatcher struct {
	producer         messageWriter
	registry         SchemaRegistrar
	logger           *zap.Logger
	topic            string
	batchSize        int
	flushInterval    time.Duration
	queue            chan Message
	schemaIDCache    sync.Map
	shutdownComplete chan struct{}
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(producer messageWriter, registry SchemaRegistrar, cfg DispatcherConfig, logger *zap.Logger) *Dispatcher {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 256
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 25
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 500 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		producer:         producer,
		registry:         registry,
		logger:           logger,
		topic:            cfg.Topic,
		batchSize:        cfg.BatchSize,
		flushInterval:    cfg.FlushInterval,
		queue:            make(chan Message, cfg.BufferSize),
		shutdownComplete: make(chan struct{}),
	}
}

// Publish validates and enqueues an event without blocking on Kafka.
func (d *Dispatcher) Publish(ctx context.Context, eventType, partitionKey string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", eventType, err)
	}
	if err := validatePayload(eventType, raw); err != nil {
		droppedCounter.WithLabelValues("invalid").Inc()
		return err
	}

	msg := Message{
		EventType:     eventType,
		SchemaSubject: schemaSubject(d.topic, eventType),
		PartitionKey:  partitionKey,
		Payload:       raw,
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case d.queue <- msg:
		return nil
	default:
		droppedCounter.WithLabelValues("queue_full").Inc()
		return ErrQueueFull
	}
}

// Start launches the delivery loop. It should be called in a goroutine.
// Events still queued when ctx is cancelled are flushed before returning.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.flushInterval)
	defer func() {
		ticker.Stop()
		close(d.shutdownComplete)
	}()

	batch := make([]Message, 0, d.batchSize)
	for {
		select {
		case <-ctx.Done():
			batch = d.drain(batch)
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
			d.flush(flushCtx, batch)
			cancel()
			return
		case msg := <-d.queue:
			batch = append(batch, msg)
			if len(batch) >= d.batchSize {
				d.flush(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				d.flush(ctx, batch)
				batch = batch[:0]
			}
		}
	}
}

// Wait waits until dispatcher stops.
func (d *Dispatcher) Wait() {
	<-d.shutdownComplete
}

func (d *Dispatcher) drain(batch []Message) []Message {
	for {
		select {
		case msg := <-d.queue:
			batch = append(batch, msg)
		default:
			return batch
		}
	}
}

func (d *Dispatcher) flush(ctx context.Context, batch []Message) {
	if len(batch) == 0 {
		return
	}
	start := time.Now()
	defer func() { batchDuration.Observe(time.Since(start).Seconds()) }()

	if err := d.deliver(ctx, batch); err != nil {
		d.logger.Error("roster event delivery failed",
			zap.String("topic", d.topic),
			zap.Int("batch_size", len(batch)),
			zap.Error(err),
		)
		failedCounter.Add(float64(len(batch)))
		return
	}
	deliveredCounter.Add(float64(len(batch)))
}

func (d *Dispatcher) deliver(ctx context.Context, messages []Message) error {
	records := make([]kafka.Message, 0, len(messages))
	for _, msg := range messages {
		schemaID, err := d.schemaID(ctx, msg)
		if err != nil {
			return err
		}

		records = append(records, kafka.Message{
			Key:   []byte(msg.PartitionKey),
			Value: encodeWireFormat(schemaID, msg.Payload),
			Time:  time.Now().UTC(),
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(msg.EventType)},
				{Key: "schema_subject", Value: []byte(msg.SchemaSubject)},
			},
		})
	}

	return d.producer.WriteMessages(ctx, d.topic, records...)
}

func (d *Dispatcher) schemaID(ctx context.Context, msg Message) (int, error) {
	if cached, ok := d.schemaIDCache.Load(msg.SchemaSubject); ok {
		return cached.(int), nil
	}

	schema, ok := schemaCatalog[msg.EventType]
	if !ok {
		return 0, fmt.Errorf("no schema metadata for event_type=%s", msg.EventType)
	}
	id, err := d.registry.EnsureSchema(ctx, msg.SchemaSubject, schema)
	if err != nil {
		return 0, fmt.Errorf("ensure schema %s: %w", msg.SchemaSubject, err)
	}
	d.schemaIDCache.Store(msg.SchemaSubject, id)
	return id, nil
}

// Message is a validated roster event waiting for delivery.
type Message struct {
	EventType     string
	SchemaSubject string
	PartitionKey  string
	Payload       json.RawMessage
}

// encodeWireFormat applies Confluent framing for Schema Registry aware payloads.
func encodeWireFormat(schemaID int, payload []byte) []byte {
	frame := make([]byte, 5+len(payload))
	frame[0] = 0
	binary.BigEndian.PutUint32(frame[1:5], uint32(schemaID))
	copy(frame[5:], payload)
	return frame
}
