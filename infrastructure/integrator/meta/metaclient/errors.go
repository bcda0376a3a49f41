package metaclient

import (
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/domain"
)

// APIError is a non-2xx answer from the Graph API.
type APIError struct {
	StatusCode int
	Response   *metadomain.ErrorResponse
	Body       string
}

func (e *APIError) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("meta api status %d: %s", e.StatusCode, e.Response.String())
	}
	return fmt.Sprintf("meta api status %d: %s", e.StatusCode, e.Body)
}

// FetchError is the single error surfaced when any page of a paginated query
// fails. URL names the page that failed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("query to Meta API has failed, please try again later. URL: %s", e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func newFetchError(rawURL string, err error) *FetchError {
	return &FetchError{URL: redact(rawURL), Err: err}
}

// redact hides the access_token query value, which paging.next links carry.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	q := u.Query()
	if !q.Has("access_token") {
		return rawURL
	}

	q.Set("access_token", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}
