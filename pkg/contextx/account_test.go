package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dutch_market/pkg/contextx"
)

func TestAccount(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		ctx     context.Context
		account contextx.Account
		wantErr bool
	}{
		{name: "Anonymous", ctx: ctx, wantErr: true},
		{name: "Stored", ctx: contextx.WithAccount(ctx, "alice"), account: "alice"},
		{name: "Trimmed", ctx: contextx.WithAccount(ctx, " bob\t"), account: "bob"},
		{name: "Blank", ctx: contextx.WithAccount(ctx, "   "), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			account, err := contextx.AccountFromContext(tc.ctx)
			if tc.wantErr {
				require.ErrorIs(t, err, contextx.ErrNoValue)
				require.Empty(t, account)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.account, account)
		})
	}
}
