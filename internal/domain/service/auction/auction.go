package auction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/rs/xid"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/entity"
	"dutch_market/internal/domain/service/pricing"
	"dutch_market/internal/domain/value"
	"dutch_market/pkg/errcodes"
	"dutch_market/pkg/logx"
)

const (
	DefaultFeePercent = 10
	// MaxStartingPrice предел цены: балансы в журнале хранятся в int64.
	MaxStartingPrice = value.Amount(math.MaxInt64)
	defaultListLimit = 100
)

const (
	opCreate = "create"
	opBuy    = "buy"
)

// CreateParams параметры нового лота.
type CreateParams struct {
	StartingPrice value.Amount
	DiscountRate  value.Rate
	Item          string
	Duration      value.Seconds
}

type AuctionService struct {
	repo       AuctionRepository
	ledger     Ledger
	clock      Clock
	platform   value.AccountID
	feePercent uint64
	notifier   Notifier
	recorder   Recorder
	locks      *keyedMutex
}

func NewAuctionService(
	repo AuctionRepository,
	ledger Ledger,
	clock Clock,
	platform value.AccountID,
) *AuctionService {
	return &AuctionService{
		repo:       repo,
		ledger:     ledger,
		clock:      clock,
		platform:   platform,
		feePercent: DefaultFeePercent,
		notifier:   nopNotifier{},
		recorder:   nopRecorder{},
		locks:      newKeyedMutex(),
	}
}

// WithFeePercent задаёт комиссию платформы. Значения больше 100 отклоняются при расчёте.
func (s *AuctionService) WithFeePercent(percent uint64) *AuctionService {
	s.feePercent = percent
	return s
}

func (s *AuctionService) WithNotifier(n Notifier) *AuctionService {
	s.notifier = n
	return s
}

func (s *AuctionService) WithRecorder(r Recorder) *AuctionService {
	s.recorder = r
	return s
}

func (s *AuctionService) FeePercent() uint64 {
	return s.feePercent
}

func (s *AuctionService) Platform() value.AccountID {
	return s.platform
}

// CreateAuction выставляет лот от имени seller и возвращает его индекс.
func (s *AuctionService) CreateAuction(
	ctx context.Context,
	seller value.AccountID,
	params CreateParams,
) (value.AuctionIndex, error) {
	index, err := s.createAuction(ctx, seller, params)
	if err != nil {
		s.recorder.Rejected(opCreate, err)
		return 0, err
	}

	s.recorder.AuctionCreated()

	return index, nil
}

func (s *AuctionService) createAuction(
	ctx context.Context,
	seller value.AccountID,
	params CreateParams,
) (value.AuctionIndex, error) {
	if err := validateCreate(seller, params); err != nil {
		return 0, err
	}

	startedAt := s.clock.Now()

	endsAt, err := pricing.EndsAt(startedAt, params.Duration)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InvalidAuctionParameters, "invalid duration")
	}

	auction := &entity.Auction{
		Item:          params.Item,
		Seller:        seller,
		StartingPrice: params.StartingPrice,
		DiscountRate:  params.DiscountRate,
		StartedAt:     startedAt,
		EndsAt:        endsAt,
		State:         entity.AuctionOpen,
	}

	index, err := s.repo.Create(ctx, auction)
	if err != nil {
		return 0, fmt.Errorf("repo.Create: %w", err)
	}

	logger(ctx).Info("auction created",
		slog.String(logx.FieldAuctionIndex, index.String()),
		slog.String(logx.FieldSeller, seller.String()),
		slog.String("starting-price", params.StartingPrice.String()),
		slog.String("discount-rate", params.DiscountRate.String()),
		slog.String("ends-at", endsAt.String()),
	)

	return index, nil
}

// validateCreate item хранится как есть, пробелы учитываются только при проверке на пустоту.
func validateCreate(seller value.AccountID, params CreateParams) error {
	switch {
	case seller == "":
		return domain.NewError(errcodes.InvalidAuctionParameters, "seller is required")
	case strings.TrimSpace(params.Item) == "":
		return domain.NewError(errcodes.InvalidAuctionParameters, "item is required")
	case params.StartingPrice == 0:
		return domain.NewError(errcodes.InvalidAuctionParameters, "starting price must be positive")
	case params.StartingPrice > MaxStartingPrice:
		return domain.Errorf(errcodes.InvalidAuctionParameters,
			"starting price must not exceed %d", MaxStartingPrice)
	case params.Duration <= 0:
		return domain.NewError(errcodes.InvalidAuctionParameters, "duration must be positive")
	}

	minimum, err := pricing.MinimumStartingPrice(params.DiscountRate, params.Duration)
	if err != nil {
		return domain.WrapError(err, errcodes.InvalidAuctionParameters, "discount rate * duration")
	}

	if params.StartingPrice < minimum {
		return domain.Errorf(errcodes.InvalidAuctionParameters,
			"starting price %d is lower than discount rate * duration = %d", params.StartingPrice, minimum)
	}

	return nil
}

// Buy покупает аукцион по текущей цене. Успешна не более одной покупки на индекс.
func (s *AuctionService) Buy(
	ctx context.Context,
	index value.AuctionIndex,
	buyer value.AccountID,
	paid value.Amount,
) (entity.Receipt, error) {
	settlement, auction, err := s.settle(ctx, index, buyer, paid)
	if err != nil {
		s.recorder.Rejected(opBuy, err)
		return entity.Receipt{}, err
	}

	s.recorder.Settled(settlement)

	event := entity.AuctionEnded{
		AuctionIndex: index,
		FinalPrice:   settlement.Price,
		Buyer:        buyer,
		Item:         auction.Item,
		SettledAt:    settlement.SettledAt,
	}

	// Продажа уже зафиксирована, ошибка доставки не откатывает её
	if err := s.notifier.AuctionEnded(ctx, event); err != nil {
		logger(ctx).Error("notifier.AuctionEnded",
			slog.String(logx.FieldAuctionIndex, index.String()),
			logx.Error(err),
		)
	}

	return settlement.Receipt(), nil
}

func (s *AuctionService) settle(
	ctx context.Context,
	index value.AuctionIndex,
	buyer value.AccountID,
	paid value.Amount,
) (entity.Settlement, *entity.Auction, error) {
	if buyer == "" {
		return entity.Settlement{}, nil, domain.NewError(errcodes.InvalidAccountID, "buyer is required")
	}

	// Мьютекс заводится только для существующего индекса
	if _, err := s.repo.GetByIndex(ctx, index); err != nil {
		return entity.Settlement{}, nil, fmt.Errorf("repo.GetByIndex: %w", err)
	}

	unlock := s.locks.Lock(index)
	defer unlock()

	auction, err := s.repo.GetByIndex(ctx, index)
	if err != nil {
		return entity.Settlement{}, nil, fmt.Errorf("repo.GetByIndex: %w", err)
	}

	if auction.Stopped() {
		return entity.Settlement{}, nil, domain.Errorf(errcodes.AuctionStopped, "auction %d is stopped", index)
	}

	now := s.clock.Now()

	price, err := pricing.CurrentPrice(auction.StartingPrice, auction.DiscountRate, auction.StartedAt, now)
	if err != nil {
		return entity.Settlement{}, nil, fmt.Errorf("pricing.CurrentPrice: %w", err)
	}

	if paid < price {
		return entity.Settlement{}, nil, domain.Errorf(errcodes.InsufficientPayment,
			"paid %d is less than current price %d", paid, price)
	}

	fee, sellerAmount, err := pricing.FeeSplit(price, s.feePercent)
	if err != nil {
		return entity.Settlement{}, nil, fmt.Errorf("pricing.FeeSplit: %w", err)
	}

	settlement := entity.Settlement{
		ID:           xid.New().String(),
		AuctionIndex: index,
		Buyer:        buyer,
		Seller:       auction.Seller,
		Platform:     s.platform,
		Paid:         paid,
		Price:        price,
		Fee:          fee,
		SellerAmount: sellerAmount,
		Refund:       paid - price,
		SettledAt:    now,
	}

	closure := entity.Closure{FinalPrice: price, Buyer: buyer, SettledAt: now}

	if err := s.commit(ctx, settlement, closure); err != nil {
		return entity.Settlement{}, nil, err
	}

	auction.Close(closure)

	logger(ctx).Info("auction settled",
		slog.String(logx.FieldAuctionIndex, index.String()),
		slog.String(logx.FieldSettlementID, settlement.ID),
		slog.String(logx.FieldBuyer, buyer.String()),
		slog.String(logx.FieldPrice, price.String()),
		slog.String("fee", fee.String()),
		slog.String("refund", settlement.Refund.String()),
	)

	return settlement, auction, nil
}

// commit фиксирует закрытие и движения средств. Без Settler ledger применяется
// первым и откатывается, если закрыть аукцион не удалось.
func (s *AuctionService) commit(ctx context.Context, settlement entity.Settlement, closure entity.Closure) error {
	if settler, ok := s.ledger.(Settler); ok {
		if err := settler.Settle(ctx, settlement, closure); err != nil {
			return fmt.Errorf("ledger.Settle: %w", err)
		}

		return nil
	}

	if err := s.ledger.Apply(ctx, settlement); err != nil {
		return fmt.Errorf("ledger.Apply: %w", err)
	}

	if err := s.repo.Close(ctx, settlement.AuctionIndex, closure); err != nil {
		if rbErr := s.ledger.Revert(ctx, settlement.ID); rbErr != nil {
			logger(ctx).Error("ledger.Revert",
				slog.String(logx.FieldAuctionIndex, settlement.AuctionIndex.String()),
				slog.String(logx.FieldSettlementID, settlement.ID),
				logx.Error(rbErr),
			)

			return errors.Join(
				fmt.Errorf("repo.Close: %w", err),
				fmt.Errorf("ledger.Revert: %w", rbErr),
			)
		}

		return fmt.Errorf("repo.Close: %w", err)
	}

	return nil
}

// GetAuction снимок аукциона после последнего зафиксированного изменения.
func (s *AuctionService) GetAuction(ctx context.Context, index value.AuctionIndex) (entity.Auction, error) {
	auction, err := s.repo.GetByIndex(ctx, index)
	if err != nil {
		return entity.Auction{}, fmt.Errorf("repo.GetByIndex: %w", err)
	}

	return *auction, nil
}

func (s *AuctionService) ListAuctions(ctx context.Context, limit, offset int) ([]entity.Auction, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	if offset < 0 {
		return nil, domain.NewError(errcodes.InvalidPaging, "offset must not be negative")
	}

	auctions, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("repo.List: %w", err)
	}

	return auctions, nil
}

// CurrentPrice цена открытого аукциона на текущий момент часов.
func (s *AuctionService) CurrentPrice(ctx context.Context, index value.AuctionIndex) (entity.Quote, error) {
	auction, err := s.repo.GetByIndex(ctx, index)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("repo.GetByIndex: %w", err)
	}

	if auction.Stopped() {
		return entity.Quote{}, domain.Errorf(errcodes.AuctionStopped, "auction %d is stopped", index)
	}

	now := s.clock.Now()

	price, err := pricing.CurrentPrice(auction.StartingPrice, auction.DiscountRate, auction.StartedAt, now)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("pricing.CurrentPrice: %w", err)
	}

	return entity.Quote{
		AuctionIndex: index,
		Price:        price,
		At:           now,
		Expired:      auction.Expired(now),
	}, nil
}
