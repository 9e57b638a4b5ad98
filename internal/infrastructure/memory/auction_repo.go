package memory

import (
	"context"
	"sync"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/entity"
	"dutch_market/internal/domain/value"
	"dutch_market/pkg/errcodes"
)

// AuctionRepository реестр в памяти: слайс, индекс = позиция.
type AuctionRepository struct {
	mu       sync.RWMutex
	auctions []entity.Auction
}

func NewAuctionRepository() *AuctionRepository {
	return &AuctionRepository{}
}

func (r *AuctionRepository) Create(_ context.Context, auction *entity.Auction) (value.AuctionIndex, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := value.AuctionIndex(len(r.auctions))

	stored := *auction
	stored.Index = index
	r.auctions = append(r.auctions, stored)

	auction.Index = index

	return index, nil
}

func (r *AuctionRepository) GetByIndex(_ context.Context, index value.AuctionIndex) (*entity.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= value.AuctionIndex(len(r.auctions)) {
		return nil, domain.Errorf(errcodes.AuctionNotFound, "auction %d not found", index)
	}

	a := r.auctions[index]

	return &a, nil
}

func (r *AuctionRepository) List(_ context.Context, limit, offset int) ([]entity.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset >= len(r.auctions) {
		return []entity.Auction{}, nil
	}

	end := min(offset+limit, len(r.auctions))

	result := make([]entity.Auction, end-offset)
	copy(result, r.auctions[offset:end])

	return result, nil
}

func (r *AuctionRepository) Close(_ context.Context, index value.AuctionIndex, closure entity.Closure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index >= value.AuctionIndex(len(r.auctions)) {
		return domain.Errorf(errcodes.AuctionNotFound, "auction %d not found", index)
	}

	a := &r.auctions[index]
	if a.Stopped() {
		return domain.Errorf(errcodes.AuctionStopped, "auction %d is stopped", index)
	}

	a.Close(closure)

	return nil
}
