package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"dutch_market/internal/domain/entity"
	"dutch_market/pkg/logx"
)

const (
	TaskAuctionEnded  = "notify:auction_ended"
	DefaultQueue      = "notifications"
	defaultMaxRetry   = 10
	auctionTaskPrefix = "auction-ended:"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue кладёт событие в очередь asynq. Доставкой занимается DeliveryHandler.
// ID задачи выводится из индекса аукциона, поэтому повторная постановка не дублирует её.
type Queue struct {
	client   enqueuer
	queue    string
	maxRetry int
}

func NewQueue(client enqueuer) *Queue {
	return &Queue{
		client:   client,
		queue:    DefaultQueue,
		maxRetry: defaultMaxRetry,
	}
}

func (q *Queue) WithQueue(name string) *Queue {
	q.queue = name
	return q
}

func (q *Queue) WithMaxRetry(n int) *Queue {
	q.maxRetry = n
	return q
}

func (q *Queue) AuctionEnded(ctx context.Context, event entity.AuctionEnded) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	taskID := auctionTaskPrefix + event.AuctionIndex.String()

	_, err = q.client.EnqueueContext(ctx,
		asynq.NewTask(TaskAuctionEnded, payload),
		asynq.TaskID(taskID),
		asynq.Queue(q.queue),
		asynq.MaxRetry(q.maxRetry),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		logger(ctx).Warn("notification already queued",
			slog.String(logx.FieldAuctionIndex, event.AuctionIndex.String()),
		)

		return nil
	}

	if err != nil {
		return fmt.Errorf("asynq.EnqueueContext: %w", err)
	}

	return nil
}
