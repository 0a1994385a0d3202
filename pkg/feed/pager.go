package feed

import (
	"context"
	"time"

	"newsdigest/pkg/news"
)

// FetchFunc loads one page of articles for an interest. ts is the
// cache-busting timestamp of the current pager generation.
type FetchFunc func(ctx context.Context, interest string, page int, ts time.Time) ([]news.Article, error)

// Pager holds the client's pagination state. It only changes in response to
// Refresh, LoadMore and SwitchInterest, each of which fetches synchronously.
// A Pager is not safe for concurrent use.
type Pager struct {
	fetch     FetchFunc
	now       func() time.Time
	interest  string
	page      int
	timestamp time.Time
	articles  []news.Article
}

func NewPager(fetch FetchFunc, interest string) *Pager {
	return &Pager{fetch: fetch, now: time.Now, interest: interest}
}

func (p *Pager) Interest() string         { return p.interest }
func (p *Pager) Page() int                { return p.page }
func (p *Pager) Articles() []news.Article { return p.articles }

// Refresh reloads page 1 with a new timestamp and replaces the list.
func (p *Pager) Refresh(ctx context.Context) error {
	p.timestamp = p.now()
	return p.load(ctx, 1)
}

// LoadMore fetches the next page and appends its unseen articles.
func (p *Pager) LoadMore(ctx context.Context) error {
	if p.page == 0 {
		return p.Refresh(ctx)
	}
	return p.load(ctx, p.page+1)
}

func (p *Pager) SwitchInterest(ctx context.Context, interest string) error {
	p.interest = interest
	p.page = 0
	p.articles = nil
	return p.Refresh(ctx)
}

func (p *Pager) load(ctx context.Context, page int) error {
	incoming, err := p.fetch(ctx, p.interest, page, p.timestamp)
	if err != nil {
		return err
	}
	p.articles = Merge(p.articles, page, incoming)
	p.page = page
	return nil
}
