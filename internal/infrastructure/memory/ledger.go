package memory

import (
	"context"
	"math"
	"sync"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/entity"
	"dutch_market/internal/domain/value"
	"dutch_market/pkg/errcodes"
)

type entry struct {
	account value.AccountID
	delta   int64
}

// Ledger балансы в памяти. Баланс счёта это сумма всех его движений,
// у покупателя он отрицательный: деньги приходят извне.
type Ledger struct {
	mu          sync.Mutex
	balances    map[value.AccountID]int64
	settlements map[string][]entry
}

func NewLedger() *Ledger {
	return &Ledger{
		balances:    make(map[value.AccountID]int64),
		settlements: make(map[string][]entry),
	}
}

func (l *Ledger) Apply(_ context.Context, settlement entity.Settlement) error {
	entries, err := toEntries(settlement)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.settlements[settlement.ID]; ok {
		return domain.Errorf(errcodes.SettlementConflict, "settlement %s already applied", settlement.ID)
	}

	// Сначала считаем всё, потом применяем: частичного результата быть не должно
	next := make(map[value.AccountID]int64, len(entries))
	for _, e := range entries {
		current, ok := next[e.account]
		if !ok {
			current = l.balances[e.account]
		}

		sum, err := checkedAdd(current, e.delta)
		if err != nil {
			return err
		}

		next[e.account] = sum
	}

	for account, balance := range next {
		l.balances[account] = balance
	}

	l.settlements[settlement.ID] = entries

	return nil
}

func (l *Ledger) Revert(_ context.Context, settlementID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, ok := l.settlements[settlementID]
	if !ok {
		return domain.Errorf(errcodes.NotFound, "settlement %s not found", settlementID)
	}

	for _, e := range entries {
		l.balances[e.account] -= e.delta
	}

	delete(l.settlements, settlementID)

	return nil
}

func (l *Ledger) Balance(_ context.Context, account value.AccountID) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balances[account], nil
}

func toEntries(settlement entity.Settlement) ([]entry, error) {
	transfers := settlement.Transfers()
	entries := make([]entry, 0, len(transfers))

	for _, t := range transfers {
		if uint64(t.Amount) > math.MaxInt64 {
			return nil, domain.Errorf(errcodes.ArithmeticOverflow, "transfer amount %d is too large", t.Amount)
		}

		amount := int64(t.Amount)

		if t.From != "" {
			entries = append(entries, entry{account: t.From, delta: -amount})
		}

		if t.To != "" {
			entries = append(entries, entry{account: t.To, delta: amount})
		}
	}

	return entries, nil
}

func checkedAdd(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, domain.Errorf(errcodes.ArithmeticOverflow, "%d + %d overflows", a, b)
	}

	return a + b, nil
}
