package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/patrickmn/go-cache"

	"dutch_market/internal/domain/entity"
	"dutch_market/pkg/logx"
)

const (
	deliveredTTL     = 24 * time.Hour
	deliveredCleanup = time.Hour
)

// Sender конечный канал доставки.
type Sender interface {
	SendAuctionEnded(ctx context.Context, event entity.AuctionEnded) error
}

// DeliveryHandler обрабатывает задачи TaskAuctionEnded. Повторно доставленные
// задачи по уже отправленному аукциону пропускаются.
type DeliveryHandler struct {
	sender    Sender
	delivered *cache.Cache
}

func NewDeliveryHandler(sender Sender) *DeliveryHandler {
	return &DeliveryHandler{
		sender:    sender,
		delivered: cache.New(deliveredTTL, deliveredCleanup),
	}
}

func (h *DeliveryHandler) Pattern() string {
	return TaskAuctionEnded
}

func (h *DeliveryHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var event entity.AuctionEnded
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return fmt.Errorf("json.Unmarshal: %w: %w", err, asynq.SkipRetry)
	}

	key := event.AuctionIndex.String()

	if _, ok := h.delivered.Get(key); ok {
		logger(ctx).Debug("notification already delivered",
			slog.String(logx.FieldAuctionIndex, key),
			slog.String(logx.FieldTaskType, task.Type()),
		)

		return nil
	}

	if err := h.sender.SendAuctionEnded(ctx, event); err != nil {
		return fmt.Errorf("sender.SendAuctionEnded: %w", err)
	}

	h.delivered.Set(key, struct{}{}, cache.DefaultExpiration)

	logger(ctx).Info("notification delivered",
		slog.String(logx.FieldAuctionIndex, key),
		slog.String(logx.FieldTaskType, task.Type()),
	)

	return nil
}
