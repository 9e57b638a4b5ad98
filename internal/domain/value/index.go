package value

import (
	"fmt"
	"strconv"
)

// AuctionIndex стабильная позиция аукциона в реестре.
type AuctionIndex uint64

func ParseAuctionIndex(s string) (AuctionIndex, error) {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("strconv.ParseUint: %w", err)
	}

	return AuctionIndex(i), nil
}

func (i AuctionIndex) String() string {
	return strconv.FormatUint(uint64(i), 10)
}
