package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hrms-lite/internal/events"
	"hrms-lite/internal/shared/cachekey"

	"github.com/go-redis/redismock/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeReader serves queued messages, then calls onDrain and blocks until ctx
// is done.
type fakeReader struct {
	queue     []kafkago.Message
	committed []kafkago.Message
	onDrain   func()
	fetchErrs int
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if r.fetchErrs > 0 {
		r.fetchErrs--
		return kafkago.Message{}, errors.New("broker unreachable")
	}
	if len(r.queue) == 0 {
		if r.onDrain != nil {
			r.onDrain()
		}
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func fastBackoff(t *testing.T) {
	t.Helper()
	initial, ceiling := initialBackoff, maxBackoff
	initialBackoff, maxBackoff = time.Millisecond, 4*time.Millisecond
	t.Cleanup(func() { initialBackoff, maxBackoff = initial, ceiling })
}

func message(t *testing.T, v any) kafkago.Message {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return kafkago.Message{Topic: events.EmployeeLifecycleTopic, Value: raw}
}

func TestHandleMessage_LifecycleEventsBumpGeneration(t *testing.T) {
	for _, eventType := range []string{events.EmployeeCreated, events.EmployeeDeleted, events.AttendanceMarked} {
		t.Run(eventType, func(t *testing.T) {
			rdb, mock := redismock.NewClientMock()
			reader := &fakeReader{}
			msg := message(t, events.Envelope{EventType: eventType, EmployeeID: "E1"})

			mock.ExpectIncr(cachekey.ReportGeneration).SetVal(2)

			handleMessage(context.Background(), reader, rdb, zap.NewNop(), msg)

			assert.Len(t, reader.committed, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandleMessage_RetriesInvalidationUntilItLands(t *testing.T) {
	fastBackoff(t)
	rdb, mock := redismock.NewClientMock()
	reader := &fakeReader{}
	msg := message(t, events.Envelope{EventType: events.EmployeeCreated})

	mock.ExpectIncr(cachekey.ReportGeneration).SetErr(errors.New("redis down"))
	mock.ExpectIncr(cachekey.ReportGeneration).SetErr(errors.New("redis down"))
	mock.ExpectIncr(cachekey.ReportGeneration).SetVal(7)

	handleMessage(context.Background(), reader, rdb, zap.NewNop(), msg)

	assert.Len(t, reader.committed, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleMessage_StopsRetryingWhenCancelled(t *testing.T) {
	fastBackoff(t)
	rdb, mock := redismock.NewClientMock()
	reader := &fakeReader{}
	msg := message(t, events.Envelope{EventType: events.AttendanceMarked})
	mock.ExpectIncr(cachekey.ReportGeneration).SetErr(errors.New("redis down"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	handleMessage(ctx, reader, rdb, zap.NewNop(), msg)

	assert.Empty(t, reader.committed)
}

func TestHandleMessage_SkipsUnknownAndMalformed(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	reader := &fakeReader{}

	handleMessage(context.Background(), reader, rdb, zap.NewNop(), message(t, events.Envelope{EventType: "payroll_run"}))
	handleMessage(context.Background(), reader, rdb, zap.NewNop(), kafkago.Message{Value: []byte("{not json")})

	assert.Len(t, reader.committed, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeLifecycleEvents_DrainsUntilCancelled(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	reader := &fakeReader{queue: []kafkago.Message{
		message(t, events.EmployeeCreatedEvent{EventType: events.EmployeeCreated, EmployeeID: "E1"}),
		message(t, events.AttendanceMarkedEvent{EventType: events.AttendanceMarked, EmployeeID: "E1"}),
	}}
	mock.ExpectIncr(cachekey.ReportGeneration).SetVal(1)
	mock.ExpectIncr(cachekey.ReportGeneration).SetVal(2)

	ctx, cancel := context.WithCancel(context.Background())
	reader.onDrain = cancel

	ConsumeLifecycleEvents(ctx, reader, rdb, zap.NewNop())

	assert.Len(t, reader.committed, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeLifecycleEvents_BacksOffOnFetchErrors(t *testing.T) {
	fastBackoff(t)
	rdb, mock := redismock.NewClientMock()
	reader := &fakeReader{
		fetchErrs: 3,
		queue:     []kafkago.Message{message(t, events.Envelope{EventType: events.EmployeeDeleted})},
	}
	mock.ExpectIncr(cachekey.ReportGeneration).SetVal(1)

	ctx, cancel := context.WithCancel(context.Background())
	reader.onDrain = cancel

	start := time.Now()
	ConsumeLifecycleEvents(ctx, reader, rdb, zap.NewNop())

	// 1ms + 2ms + 4ms of backoff before the message is reached.
	assert.GreaterOrEqual(t, time.Since(start), 7*time.Millisecond)
	assert.Len(t, reader.committed, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
