package server

import (
	"context"
	"fmt"
	"net/http"

	"dutch_market/internal/domain/value"
	"dutch_market/pkg/httpx/reply"
	"dutch_market/pkg/rest"
)

type balanceService interface {
	Balance(ctx context.Context, account value.AccountID) (int64, error)
}

type LedgerServer struct {
	balanceService balanceService
}

func NewLedgerServer(balanceService balanceService) LedgerServer {
	return LedgerServer{
		balanceService: balanceService,
	}
}

func (s LedgerServer) getV1AccountBalance(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	account, err := accountParam(r)
	if err != nil {
		return fmt.Errorf("accountParam: %w", err)
	}

	balance, err := s.balanceService.Balance(ctx, account)
	if err != nil {
		return fmt.Errorf("balanceService.Balance: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Balance{
		Account: account.String(),
		Balance: balance,
	})

	return nil
}
