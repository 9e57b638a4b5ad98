package value

import (
	"strconv"
)

// Amount денежная сумма в минимальных неделимых единицах.
type Amount uint64

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// Rate скорость снижения цены: единиц суммы за секунду.
type Rate uint64

func (r Rate) String() string {
	return strconv.FormatUint(uint64(r), 10)
}
