package value_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dutch_market/internal/domain/value"
)

func TestParseAccountID(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		input  string
		output value.AccountID
		err    error
	}{
		{name: "Plain", input: "seller-1", output: "seller-1"},
		{name: "Trimmed", input: "  buyer  ", output: "buyer"},
		{name: "Empty", input: "   ", err: value.ErrEmptyAccountID},
		{name: "Too long", input: strings.Repeat("a", 129), err: value.ErrAccountIDTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			id, err := value.ParseAccountID(tc.input)
			if tc.err != nil {
				rq.ErrorIs(err, tc.err)
				return
			}

			rq.NoError(err)
			rq.Equal(tc.output, id)
		})
	}
}

func TestParseAuctionIndex(t *testing.T) {
	rq := require.New(t)

	idx, err := value.ParseAuctionIndex("42")
	rq.NoError(err)
	rq.Equal(value.AuctionIndex(42), idx)
	rq.Equal("42", idx.String())

	_, err = value.ParseAuctionIndex("-1")
	rq.Error(err)

	_, err = value.ParseAuctionIndex("abc")
	rq.Error(err)
}

func TestTimestamp(t *testing.T) {
	rq := require.New(t)

	ts := value.Timestamp(1060)
	rq.Equal(int64(1060), ts.Time().Unix())
	rq.Equal(ts, value.TimestampFromTime(ts.Time()))
}
