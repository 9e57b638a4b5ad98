package req_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"dutch_market/pkg/errcodes"
	"dutch_market/pkg/httpx/req"
	"dutch_market/pkg/rest"
)

func TestRead(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "Valid", body: `{"paidAmount":100}`},
		{name: "Zero is present", body: `{"paidAmount":0}`},
		{name: "Missing field", body: `{}`, wantErr: true},
		{name: "Unknown field", body: `{"paidAmount":100,"buyer":"mallory"}`, wantErr: true},
		{name: "Broken JSON", body: `{"paidAmount":`, wantErr: true},
		{name: "Too large", body: `{"paidAmount":1` + strings.Repeat(" ", req.MaxBodyBytes) + `}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/v1/auctions/0/buy", strings.NewReader(tc.body))

			var dest rest.BuyRequest

			err := req.Read(r, &dest)
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, failure.IsInvalidArgumentError(err))
				require.Equal(t, errcodes.ValidationError, failure.Code(err))

				return
			}

			require.NoError(t, err)
			require.NotNil(t, dest.PaidAmount)
		})
	}
}
