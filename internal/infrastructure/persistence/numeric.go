package persistence

import (
	"strconv"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/value"
	"dutch_market/pkg/errcodes"
)

func parseAmount(s string) (value.Amount, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to parse amount")
	}

	return value.Amount(v), nil
}

func formatDelta(amount value.Amount, negative bool) string {
	s := amount.String()
	if negative {
		return "-" + s
	}

	return s
}
