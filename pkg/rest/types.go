// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// CreateAuctionRequest Параметры нового лота
type CreateAuctionRequest struct {
	// StartingPrice Начальная цена
	StartingPrice *uint64 `json:"startingPrice" validate:"required"`

	// DiscountRate Снижение цены в секунду
	DiscountRate *uint64 `json:"discountRate" validate:"required"`

	// Item Описание лота
	Item string `json:"item" validate:"required"`

	// Duration Длительность в секундах
	Duration *int64 `json:"duration" validate:"required"`
}

type CreateAuctionResponse struct {
	Index uint64 `json:"index"`
}

// Auction Снимок аукциона
type Auction struct {
	Index         uint64       `json:"index"`
	Item          string       `json:"item"`
	Seller        string       `json:"seller"`
	StartingPrice uint64       `json:"startingPrice"`
	DiscountRate  uint64       `json:"discountRate"`
	StartedAt     int64        `json:"startedAt"`
	EndsAt        int64        `json:"endsAt"`
	State         AuctionState `json:"state"`
	FinalPrice    *uint64      `json:"finalPrice,omitempty"`
	Buyer         *string      `json:"buyer,omitempty"`
	SettledAt     *int64       `json:"settledAt,omitempty"`
}

// AuctionState Состояние аукциона
type AuctionState string

const (
	AuctionStateOpen   AuctionState = "open"
	AuctionStateClosed AuctionState = "closed"
)

type AuctionList struct {
	Items  []Auction `json:"items"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// Quote Текущая цена
type Quote struct {
	Index   uint64 `json:"index"`
	Price   uint64 `json:"price"`
	At      int64  `json:"at"`
	Expired bool   `json:"expired"`
}

type BuyRequest struct {
	// PaidAmount Сумма, которую покупатель готов заплатить
	PaidAmount *uint64 `json:"paidAmount" validate:"required"`
}

// Receipt Результат покупки
type Receipt struct {
	SettlementID string `json:"settlementId"`
	Index        uint64 `json:"index"`
	FinalPrice   uint64 `json:"finalPrice"`
	Fee          uint64 `json:"fee"`
	SellerAmount uint64 `json:"sellerAmount"`
	Refund       uint64 `json:"refund"`
	Buyer        string `json:"buyer"`
	Seller       string `json:"seller"`
	SettledAt    int64  `json:"settledAt"`
}

// Balance Чистый баланс счёта в леджере
type Balance struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID Идентификатор запроса для обращения в поддержку
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
