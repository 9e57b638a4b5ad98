// Package pricing содержит чистые функции расчёта цены голландского аукциона.
package pricing

import (
	"math"
	"math/bits"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/value"
	"dutch_market/pkg/errcodes"
)

const maxFeePercent = 100

// CurrentPrice цена на момент now: startingPrice - discountRate*(now-startedAt), не ниже нуля.
func CurrentPrice(
	startingPrice value.Amount,
	discountRate value.Rate,
	startedAt value.Timestamp,
	now value.Timestamp,
) (value.Amount, error) {
	if now < startedAt {
		return 0, domain.Errorf(errcodes.InvalidClock, "clock %d is before auction start %d", now, startedAt)
	}

	elapsed := uint64(now) - uint64(startedAt)

	discount, err := CheckedMul(uint64(discountRate), elapsed)
	if err != nil {
		return 0, err
	}

	if discount >= uint64(startingPrice) {
		return 0, nil
	}

	return startingPrice - value.Amount(discount), nil
}

// MinimumStartingPrice discountRate*duration: стартовая цена не может быть ниже,
// иначе цена дойдёт до нуля раньше endsAt.
func MinimumStartingPrice(discountRate value.Rate, duration value.Seconds) (value.Amount, error) {
	if duration < 0 {
		return 0, domain.Errorf(errcodes.InvalidAuctionParameters, "negative duration %d", duration)
	}

	v, err := CheckedMul(uint64(discountRate), uint64(duration))
	if err != nil {
		return 0, err
	}

	return value.Amount(v), nil
}

// EndsAt startedAt + duration с проверкой переполнения.
func EndsAt(startedAt value.Timestamp, duration value.Seconds) (value.Timestamp, error) {
	if duration > 0 && int64(startedAt) > math.MaxInt64-int64(duration) {
		return 0, domain.Errorf(errcodes.ArithmeticOverflow, "%d + %d overflows", startedAt, duration)
	}

	return startedAt + value.Timestamp(duration), nil
}

// FeeSplit делит цену на комиссию платформы и сумму продавцу. Комиссия округляется вниз.
func FeeSplit(price value.Amount, feePercent uint64) (fee, sellerAmount value.Amount, err error) {
	if feePercent > maxFeePercent {
		return 0, 0, domain.Errorf(errcodes.InvalidFeePercent, "fee percent %d is out of range", feePercent)
	}

	hi, lo := bits.Mul64(uint64(price), feePercent)
	// hi < 100 всегда, так что деление не паникует
	q, _ := bits.Div64(hi, lo, maxFeePercent)

	fee = value.Amount(q)

	return fee, price - fee, nil
}

// CheckedMul умножение без переполнения.
func CheckedMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, domain.Errorf(errcodes.ArithmeticOverflow, "%d * %d overflows", a, b)
	}

	return lo, nil
}
