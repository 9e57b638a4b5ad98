package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"dutch_market/pkg/httpx"
)

type countingAuthenticator struct {
	token  string
	next   string
	called int
}

func (a *countingAuthenticator) Authenticate(context.Context) error {
	a.called++
	a.token = a.next

	return nil
}

func (a *countingAuthenticator) BearerToken() string {
	return a.token
}

func TestAuthBearerRoundTripper(t *testing.T) {
	rq := require.New(t)

	var seen []string

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))

		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer httpServer.Close()

	auth := &countingAuthenticator{token: "stale", next: "fresh"}

	client := &http.Client{
		Transport: httpx.NewAuthBearerRoundTripper(http.DefaultTransport, auth),
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, httpServer.URL, http.NoBody)
	rq.NoError(err)

	resp, err := client.Do(req)
	rq.NoError(err)

	defer resp.Body.Close()

	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(1, auth.called)
	rq.Equal([]string{"Bearer stale", "Bearer fresh"}, seen)
}

func TestStaticToken(t *testing.T) {
	rq := require.New(t)

	rq.NoError(httpx.StaticToken("alice").Authenticate(context.Background()))
	rq.Equal("alice", httpx.StaticToken("alice").BearerToken())
	rq.ErrorIs(httpx.StaticToken("").Authenticate(context.Background()), httpx.ErrEmptyToken)
}
