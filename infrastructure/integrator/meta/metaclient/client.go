package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-insights-connector/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultPageDelay = 250 * time.Millisecond

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option customizes a MetaClient.
type Option func(*MetaClient)

// WithHTTPClient replaces the transport used for every page request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *MetaClient) {
		c.httpClient = hc
	}
}

// WithSleeper replaces the inter-page delay, mostly for tests.
func WithSleeper(s Sleeper) Option {
	return func(c *MetaClient) {
		c.sleep = s
	}
}

// MetaClient issues authenticated GET requests to the Graph API.
type MetaClient struct {
	baseURL     string
	accessToken string
	pageDelay   time.Duration
	httpClient  *http.Client
	sleep       Sleeper
}

// NewClient builds a client from the Meta section of cfg. A non-positive page
// delay falls back to DefaultPageDelay.
func NewClient(cfg *config.Config, opts ...Option) *MetaClient {
	delay := cfg.Meta.PageDelay
	if delay <= 0 {
		delay = DefaultPageDelay
	}

	c := &MetaClient{
		baseURL:     cfg.Meta.URL,
		accessToken: cfg.Meta.AccessToken,
		pageDelay:   delay,
		httpClient:  &http.Client{Timeout: cfg.Meta.HTTPTimeout},
		sleep:       sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// InsightsURL is the first page of the insights edge of an ads account.
func (c *MetaClient) InsightsURL(accountID string, params url.Values) string {
	return fmt.Sprintf("%s/%s/insights?%s", c.baseURL, metadomain.AccountPath(accountID), params.Encode())
}

// AdAccountsURL is the first page of the accounts readable by the token.
func (c *MetaClient) AdAccountsURL() string {
	params := url.Values{}
	params.Set("fields", "id,name")
	return fmt.Sprintf("%s/me/adaccounts/?%s", c.baseURL, params.Encode())
}

// Get issues one authenticated GET and returns the body of a 2xx response.
func (c *MetaClient) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return HandleResponse(resp)
}

// HandleResponse reads the body and turns non-2xx statuses into an *APIError.
func HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if errResp, parseErr := ParseErrorResponse(body); parseErr == nil && errResp.Error.Message != "" {
		apiErr.Response = errResp
		fields := logrus.Fields{
			"code":    errResp.Error.Code,
			"subcode": errResp.Error.ErrorSubcode,
		}
		switch {
		case errResp.IsTokenExpired():
			logrus.WithFields(fields).Warn("meta: access token expired or invalidated")
		case errResp.IsRateLimited():
			logrus.WithFields(fields).Warn("meta: rate limit reached")
		}
	} else {
		apiErr.Body = string(body)
	}

	return nil, apiErr
}

// ParseErrorResponse decodes the Graph API error envelope.
func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}

func (c *MetaClient) wait(ctx context.Context) error {
	return c.sleep(ctx, c.pageDelay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
