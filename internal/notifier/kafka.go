package notifier

import (
	"context"
	"errors"
	"fmt"
	"pairing-hub/internal/codec"
	"pairing-hub/internal/config"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const topic = "pairing-hub-push"

type kafkaNotifier struct {
	logger     *zap.SugaredLogger
	w          *kafka.Writer
	instanceID string
}

func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig, instanceID string) Notifier {
	w := &kafka.Writer{
		Addr:        kafka.TCP(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		Topic:       topic,
		Async:       true,
		Balancer:    &kafka.LeastBytes{},
		ErrorLogger: zap.NewStdLog(logger.Desugar()),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down kafka writer")
		if err := w.Close(); err != nil {
			logger.Errorw("failed to close kafka writer", "error", err)
		}
	}()

	return &kafkaNotifier{
		logger:     logger,
		w:          w,
		instanceID: instanceID,
	}
}

func (k *kafkaNotifier) Publish(ctx context.Context, targets []Route, frame []byte) error {
	if len(targets) == 0 {
		return nil
	}

	bytes, err := codec.Marshal(Envelope{Origin: k.instanceID, Targets: targets, Frame: frame})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	if err := k.w.WriteMessages(ctx, kafka.Message{
		Value:   bytes,
		Headers: []kafka.Header{{Key: "X-Origin", Value: []byte(k.instanceID)}},
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// NewKafkaConsumer reads every envelope on the topic. Each instance uses its own
// consumer group so all instances see all messages.
func NewKafkaConsumer(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig,
	instanceID string, deliver DeliverFunc) {

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		GroupID:     "pairing-hub-" + instanceID,
		Topic:       topic,
		StartOffset: kafka.LastOffset,
		Logger:      kafka.LoggerFunc(logger.Debugf),
		ErrorLogger: kafka.LoggerFunc(logger.Errorf),
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		consume(ctx, logger, reader, instanceID, deliver)
		logger.Info("shutting down kafka reader")
		if err := reader.Close(); err != nil {
			logger.Errorw("failed to close kafka reader", "error", err)
		}
	}()
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

func consume(ctx context.Context, logger *zap.SugaredLogger, r messageReader, instanceID string, deliver DeliverFunc) {
	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			logger.Errorw("failed to read message", "error", err)
			continue
		}

		var env Envelope
		if err := codec.Unmarshal(m.Value, &env); err != nil {
			logger.Errorw("failed to unmarshal envelope", "error", err, "offset", m.Offset)
			continue
		}
		if env.Origin == instanceID {
			continue
		}
		deliver(env.Targets, env.Frame)
	}
}
