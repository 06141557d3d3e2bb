package consumer

import (
	"context"
	"encoding/json"
	"time"

	"hrms-lite/internal/events"
	"hrms-lite/internal/shared/cachekey"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 10 * time.Second
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLifecycleEvents retires cached report snapshots whenever an employee
// or attendance change is published, including changes made by other API
// replicas. Unknown event types are committed and skipped.
func ConsumeLifecycleEvents(
	ctx context.Context,
	reader MessageReader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.report_invalidation")
	log.Info("report invalidation consumer started")

	backoff := initialBackoff
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("report invalidation consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Duration("retry_in", backoff), zap.Error(err))
			if !sleep(ctx, backoff) {
				log.Info("report invalidation consumer stopped")
				return
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = initialBackoff

		handleMessage(ctx, reader, rdb, log, msg)
	}
}

func handleMessage(ctx context.Context, reader MessageReader, rdb *redis.Client, log *zap.Logger, msg kafkago.Message) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		log.Error("decode lifecycle event failed", zap.String("topic", msg.Topic), zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	switch env.EventType {
	case events.EmployeeCreated, events.EmployeeDeleted, events.AttendanceMarked:
		// A group reader moves past uncommitted offsets, so the bump is
		// retried here until it lands or the consumer stops.
		if !invalidate(ctx, rdb, log, env) {
			return
		}
	default:
		log.Debug("ignoring event", zap.String("event_type", env.EventType))
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit lifecycle message failed", zap.Error(err))
		return
	}

	log.Info("report cache invalidated",
		zap.String("event_type", env.EventType),
		zap.String("employee_id", env.EmployeeID),
		zap.String("request_id", env.RequestID),
	)
}

func invalidate(ctx context.Context, rdb *redis.Client, log *zap.Logger, env events.Envelope) bool {
	backoff := initialBackoff
	for {
		err := rdb.Incr(ctx, cachekey.ReportGeneration).Err()
		if err == nil {
			return true
		}
		log.Error("invalidate report cache failed",
			zap.String("event_type", env.EventType),
			zap.String("request_id", env.RequestID),
			zap.Duration("retry_in", backoff),
			zap.Error(err),
		)
		if !sleep(ctx, backoff) {
			return false
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
