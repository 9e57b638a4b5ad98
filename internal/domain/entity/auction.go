package entity

import (
	"dutch_market/internal/domain/value"
)

// AuctionState состояние аукциона. Из Closed переходов нет.
type AuctionState uint8

const (
	AuctionOpen AuctionState = iota
	AuctionClosed
)

func (s AuctionState) String() string {
	switch s {
	case AuctionOpen:
		return "open"
	case AuctionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Auction голландский аукцион: цена падает от StartingPrice на DiscountRate в секунду.
type Auction struct {
	Index         value.AuctionIndex `json:"index"`
	Item          string             `json:"item"`
	Seller        value.AccountID    `json:"seller"`
	StartingPrice value.Amount       `json:"starting_price"`
	DiscountRate  value.Rate         `json:"discount_rate"`
	StartedAt     value.Timestamp    `json:"started_at"`
	EndsAt        value.Timestamp    `json:"ends_at"`
	State         AuctionState       `json:"state"`

	// Заполняются один раз при успешной покупке
	FinalPrice value.Amount    `json:"final_price,omitempty"`
	Buyer      value.AccountID `json:"buyer,omitempty"`
	SettledAt  value.Timestamp `json:"settled_at,omitempty"`
}

// Stopped true, если аукцион уже продан.
func (a *Auction) Stopped() bool {
	return a.State == AuctionClosed
}

func (a *Auction) Duration() value.Seconds {
	return value.Seconds(a.EndsAt - a.StartedAt)
}

// Expired аукцион прошёл endsAt, но остаётся открытым по минимальной цене.
func (a *Auction) Expired(now value.Timestamp) bool {
	return now > a.EndsAt
}

// Closure данные перехода Open -> Closed.
type Closure struct {
	FinalPrice value.Amount
	Buyer      value.AccountID
	SettledAt  value.Timestamp
}

// Close применяет закрытие к снимку аукциона.
func (a *Auction) Close(c Closure) {
	a.State = AuctionClosed
	a.FinalPrice = c.FinalPrice
	a.Buyer = c.Buyer
	a.SettledAt = c.SettledAt
}
