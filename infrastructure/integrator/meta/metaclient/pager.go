package metaclient

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/domain"
)

// Pager walks a paginated edge one page at a time, following paging.next. A
// Pager is single use and not safe for concurrent use.
type Pager[T any] struct {
	client  *MetaClient
	next    string
	current string
	batch   []T
	pages   int
	err     error
}

// NewPager starts a pager at firstURL.
func NewPager[T any](client *MetaClient, firstURL string) *Pager[T] {
	return &Pager[T]{
		client: client,
		next:   firstURL,
	}
}

// Next waits the page delay, fetches the next page and reports whether a batch
// is available. It returns false once the last page was read or on error.
func (p *Pager[T]) Next(ctx context.Context) bool {
	if p.err != nil || p.next == "" {
		return false
	}

	p.current = p.next
	p.batch = nil

	if err := p.client.wait(ctx); err != nil {
		p.err = newFetchError(p.current, err)
		return false
	}

	logrus.WithFields(logrus.Fields{
		"page": p.pages + 1,
		"url":  redact(p.current),
	}).Debug("meta: fetching page")

	body, err := p.client.Get(ctx, p.current)
	if err != nil {
		p.err = newFetchError(p.current, err)
		return false
	}

	var page metadomain.Page[T]
	if err := json.Unmarshal(body, &page); err != nil {
		p.err = newFetchError(p.current, fmt.Errorf("decoding page: %w", err))
		return false
	}

	p.pages++
	p.batch = page.Data
	p.next = page.Paging.Next
	return true
}

// Batch returns the records of the page read by the last successful Next.
func (p *Pager[T]) Batch() []T {
	return p.batch
}

// Err returns the *FetchError that stopped the pager, if any.
func (p *Pager[T]) Err() error {
	return p.err
}

// Pages counts the pages read so far.
func (p *Pager[T]) Pages() int {
	return p.pages
}

// FetchAll drains the pager. On failure the records read so far are dropped and
// a *FetchError is returned.
func FetchAll[T any](ctx context.Context, p *Pager[T]) ([]T, error) {
	all := make([]T, 0)
	for p.Next(ctx) {
		all = append(all, p.Batch()...)
	}

	if err := p.Err(); err != nil {
		return nil, err
	}

	return all, nil
}
