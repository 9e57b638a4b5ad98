package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"

	"dutch_market/pkg/apiclient"
	"dutch_market/pkg/contextx"
	"dutch_market/pkg/httpx"
	"dutch_market/pkg/logx"
	"dutch_market/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var errUsage = errors.New("usage")

const usage = `auctionctl [flags] <command> [args]

commands:
  create <starting-price> <discount-rate> <duration-seconds> <item>
  list [limit] [offset]
  get <index>
  price <index>
  buy <index> <paid-amount>
  balance <account>

flags:
`

func main() {
	var (
		baseURL = flag.String("url", envOr("AUCTIONCTL_URL", "http://localhost:8080"), "engine base URL")
		account = flag.String("account", os.Getenv("AUCTIONCTL_ACCOUNT"), "caller account, sent as bearer token")
		timeout = flag.Duration("timeout", 10*time.Second, "request timeout")
		verbose = flag.Bool("v", false, "log HTTP requests and responses")
	)

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	level := "error"
	if *verbose {
		level = "debug"
	}

	ctx = contextx.WithLogger(ctx, logx.NewLogger(os.Stderr, level, true))

	client := newClient(*baseURL, *account, *verbose)

	result, err := run(ctx, client, flag.Args())
	if errors.Is(err, errUsage) {
		flag.Usage()
		os.Exit(2) //nolint:gocritic
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
}

func newClient(baseURL, account string, verbose bool) apiclient.AuctionClient {
	var transport http.RoundTripper = http.DefaultTransport

	if verbose {
		transport = httpx.NewLoggingRoundTripper(transport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		)
	}

	if account != "" {
		transport = httpx.NewAuthBearerRoundTripper(transport, httpx.StaticToken(account))
	}

	return apiclient.NewAuctionClient(apiclient.NewAPIClient(baseURL, &http.Client{Transport: transport}))
}

func run(ctx context.Context, client apiclient.AuctionClient, args []string) (any, error) {
	if len(args) == 0 {
		return nil, errUsage
	}

	cmd, args := args[0], args[1:]

	switch {
	case cmd == "create" && len(args) == 4:
		startingPrice, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("starting price: %w", err)
		}

		discountRate, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("discount rate: %w", err)
		}

		duration, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("duration: %w", err)
		}

		return client.CreateAuction(ctx, rest.CreateAuctionRequest{
			StartingPrice: &startingPrice,
			DiscountRate:  &discountRate,
			Item:          args[3],
			Duration:      &duration,
		})
	case cmd == "list" && len(args) <= 2:
		limit, offset := 100, 0

		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("limit: %w", err)
			}
			limit = v
		}

		if len(args) > 1 {
			v, err := strconv.Atoi(args[1])
			if err != nil {
				return nil, fmt.Errorf("offset: %w", err)
			}
			offset = v
		}

		return client.ListAuctions(ctx, limit, offset)
	case cmd == "get" && len(args) == 1:
		index, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}

		return client.GetAuction(ctx, index)
	case cmd == "price" && len(args) == 1:
		index, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}

		return client.Price(ctx, index)
	case cmd == "buy" && len(args) == 2:
		index, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}

		paid, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("paid amount: %w", err)
		}

		return client.Buy(ctx, index, paid)
	case cmd == "balance" && len(args) == 1:
		return client.Balance(ctx, args[0])
	default:
		return nil, errUsage
	}
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return def
}
