package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/fx"

	"github.com/mvhoek/wired/internal/bot"
)

// maxBodySize caps attachment downloads. Discord attachments on default
// servers stay well under this.
const maxBodySize = 20 << 20

// Client downloads attachment binaries over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient creates an attachment fetcher with a bounded request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch implements bot.Fetcher.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build attachment request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d fetching attachment", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment body: %w", err)
	}

	return body, nil
}

type Result struct {
	fx.Out

	Fetcher bot.Fetcher
}

func New() Result {
	return Result{Fetcher: NewClient()}
}

func Module() fx.Option {
	return fx.Module(
		"fetch",
		fx.Provide(
			New,
		),
	)
}
