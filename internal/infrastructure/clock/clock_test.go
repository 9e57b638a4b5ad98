package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dutch_market/internal/domain/value"
	"dutch_market/internal/infrastructure/clock"
)

func TestSystemIsMonotonic(t *testing.T) {
	rq := require.New(t)

	times := []time.Time{
		time.Unix(1000, 0),
		time.Unix(1005, 0),
		time.Unix(990, 0), // перевели часы назад
		time.Unix(1010, 0),
	}

	i := 0
	c := clock.NewSystemWithSource(func() time.Time {
		ts := times[i]
		i++

		return ts
	})

	rq.Equal(value.Timestamp(1000), c.Now())
	rq.Equal(value.Timestamp(1005), c.Now())
	rq.Equal(value.Timestamp(1005), c.Now())
	rq.Equal(value.Timestamp(1010), c.Now())
}

func TestManual(t *testing.T) {
	rq := require.New(t)

	c := clock.NewManual(1000)
	rq.Equal(value.Timestamp(1000), c.Now())
	rq.Equal(value.Timestamp(1060), c.Advance(60))

	c.Set(5)
	rq.Equal(value.Timestamp(5), c.Now())
}
