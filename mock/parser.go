package mock

import "github.com/fwojciec/pttcrawl"

var (
	_ pttcrawl.ArticleParser = (*ArticleParser)(nil)
	_ pttcrawl.IndexParser   = (*IndexParser)(nil)
)

// ArticleParser is a mock implementation of pttcrawl.ArticleParser.
type ArticleParser struct {
	ParseFn func(html string, src pttcrawl.Source) (*pttcrawl.Article, error)
}

func (p *ArticleParser) Parse(html string, src pttcrawl.Source) (*pttcrawl.Article, error) {
	return p.ParseFn(html, src)
}

// IndexParser is a mock implementation of pttcrawl.IndexParser.
type IndexParser struct {
	ParseIndexFn func(html string) ([]pttcrawl.IndexEntry, error)
	LastPageFn   func(html string) int
}

func (p *IndexParser) ParseIndex(html string) ([]pttcrawl.IndexEntry, error) {
	return p.ParseIndexFn(html)
}

func (p *IndexParser) LastPage(html string) int {
	return p.LastPageFn(html)
}
