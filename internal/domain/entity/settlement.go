package entity

import (
	"dutch_market/internal/domain/value"
)

type TransferKind string

const (
	TransferPayment TransferKind = "payment" // покупатель -> эскроу, вся оплата
	TransferPayout  TransferKind = "payout"  // эскроу -> продавец
	TransferFee     TransferKind = "fee"     // эскроу -> платформа
	TransferRefund  TransferKind = "refund"  // эскроу -> покупатель, переплата
)

// Transfer одно движение средств. From пустой для входящей оплаты.
type Transfer struct {
	Kind   TransferKind    `json:"kind"`
	From   value.AccountID `json:"from,omitempty"`
	To     value.AccountID `json:"to,omitempty"`
	Amount value.Amount    `json:"amount"`
}

// Settlement расчёт по одной покупке. Применяется к леджеру целиком или никак.
type Settlement struct {
	ID           string             `json:"id"`
	AuctionIndex value.AuctionIndex `json:"auction_index"`
	Buyer        value.AccountID    `json:"buyer"`
	Seller       value.AccountID    `json:"seller"`
	Platform     value.AccountID    `json:"platform"`
	Paid         value.Amount       `json:"paid"`
	Price        value.Amount       `json:"price"`
	Fee          value.Amount       `json:"fee"`
	SellerAmount value.Amount       `json:"seller_amount"`
	Refund       value.Amount       `json:"refund"`
	SettledAt    value.Timestamp    `json:"settled_at"`
}

// Transfers раскладывает расчёт на движения. Нулевые суммы пропускаются.
func (s Settlement) Transfers() []Transfer {
	all := []Transfer{
		{Kind: TransferPayment, From: s.Buyer, Amount: s.Paid},
		{Kind: TransferPayout, To: s.Seller, Amount: s.SellerAmount},
		{Kind: TransferFee, To: s.Platform, Amount: s.Fee},
		{Kind: TransferRefund, To: s.Buyer, Amount: s.Refund},
	}

	result := make([]Transfer, 0, len(all))
	for _, t := range all {
		if t.Amount == 0 {
			continue
		}
		result = append(result, t)
	}

	return result
}

// Receipt результат успешной покупки для вызывающей стороны.
type Receipt struct {
	SettlementID string             `json:"settlement_id"`
	AuctionIndex value.AuctionIndex `json:"auction_index"`
	FinalPrice   value.Amount       `json:"final_price"`
	Fee          value.Amount       `json:"fee"`
	SellerAmount value.Amount       `json:"seller_amount"`
	Refund       value.Amount       `json:"refund"`
	Buyer        value.AccountID    `json:"buyer"`
	Seller       value.AccountID    `json:"seller"`
	SettledAt    value.Timestamp    `json:"settled_at"`
}

func (s Settlement) Receipt() Receipt {
	return Receipt{
		SettlementID: s.ID,
		AuctionIndex: s.AuctionIndex,
		FinalPrice:   s.Price,
		Fee:          s.Fee,
		SellerAmount: s.SellerAmount,
		Refund:       s.Refund,
		Buyer:        s.Buyer,
		Seller:       s.Seller,
		SettledAt:    s.SettledAt,
	}
}

// AuctionEnded событие о продаже, отправляется ровно один раз на успешную покупку.
type AuctionEnded struct {
	AuctionIndex value.AuctionIndex `json:"auction_index"`
	FinalPrice   value.Amount       `json:"final_price"`
	Buyer        value.AccountID    `json:"buyer"`
	Item         string             `json:"item"`
	SettledAt    value.Timestamp    `json:"settled_at"`
}

// Quote текущая цена аукциона на момент At.
type Quote struct {
	AuctionIndex value.AuctionIndex `json:"auction_index"`
	Price        value.Amount       `json:"price"`
	At           value.Timestamp    `json:"at"`
	Expired      bool               `json:"expired"`
}
