package notifier

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"dutch_market/internal/domain/entity"
	"dutch_market/pkg/contextx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Notifier получатель события о завершении аукциона.
type Notifier interface {
	AuctionEnded(ctx context.Context, event entity.AuctionEnded) error
}

// Multi рассылает событие всем получателям. Ошибка одного не мешает остальным.
type Multi []Notifier

func (m Multi) AuctionEnded(ctx context.Context, event entity.AuctionEnded) error {
	var errs []error

	for i, n := range m {
		if err := n.AuctionEnded(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("notifier[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}
