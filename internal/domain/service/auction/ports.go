package auction

import (
	"context"

	"dutch_market/internal/domain/entity"
	"dutch_market/internal/domain/value"
	"dutch_market/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Clock внешний источник времени, монотонно неубывающий.
type Clock interface {
	Now() value.Timestamp
}

// AuctionRepository хранилище реестра: только добавление, индексы не переиспользуются.
type AuctionRepository interface {
	// Create назначает следующий индекс и сохраняет аукцион.
	Create(ctx context.Context, auction *entity.Auction) (value.AuctionIndex, error)
	GetByIndex(ctx context.Context, index value.AuctionIndex) (*entity.Auction, error)
	List(ctx context.Context, limit, offset int) ([]entity.Auction, error)
	// Close переводит Open -> Closed. Для уже закрытого аукциона возвращает AuctionStopped.
	Close(ctx context.Context, index value.AuctionIndex, closure entity.Closure) error
}

// Ledger исполняет движения средств. Apply применяет расчёт целиком или не применяет вовсе.
type Ledger interface {
	Apply(ctx context.Context, settlement entity.Settlement) error
	Revert(ctx context.Context, settlementID string) error
}

// Settler хранилище, которое закрывает аукцион и применяет расчёт одной транзакцией.
// Если Ledger его реализует, компенсация через Revert не нужна.
type Settler interface {
	Settle(ctx context.Context, settlement entity.Settlement, closure entity.Closure) error
}

// Notifier получатель событий о продаже.
type Notifier interface {
	AuctionEnded(ctx context.Context, event entity.AuctionEnded) error
}

// Recorder метрики движка.
type Recorder interface {
	AuctionCreated()
	Settled(settlement entity.Settlement)
	Rejected(op string, err error)
}

type nopNotifier struct{}

func (nopNotifier) AuctionEnded(context.Context, entity.AuctionEnded) error { return nil }

type nopRecorder struct{}

func (nopRecorder) AuctionCreated()           {}
func (nopRecorder) Settled(entity.Settlement) {}
func (nopRecorder) Rejected(string, error)    {}
