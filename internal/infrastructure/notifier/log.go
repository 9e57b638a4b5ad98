package notifier

import (
	"context"
	"log/slog"

	"dutch_market/internal/domain/entity"
	"dutch_market/pkg/logx"
)

// Log пишет событие в журнал приложения.
type Log struct{}

func NewLog() Log {
	return Log{}
}

func (Log) AuctionEnded(ctx context.Context, event entity.AuctionEnded) error {
	logger(ctx).Info("auction ended",
		slog.String(logx.FieldAuctionIndex, event.AuctionIndex.String()),
		slog.String(logx.FieldPrice, event.FinalPrice.String()),
		slog.String(logx.FieldBuyer, event.Buyer.String()),
		slog.String("item", event.Item),
	)

	return nil
}
