package value

import (
	"strconv"
	"time"
)

// Timestamp момент времени внешних часов, секунды unix.
type Timestamp int64

func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t Timestamp) String() string {
	return strconv.FormatInt(int64(t), 10)
}

func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.Unix())
}

// Seconds длительность в секундах.
type Seconds int64
