package goquery

import (
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pttcrawl"
)

// prevPageMarker labels the paging button that links to the previous index page.
const prevPageMarker = "‹"

var indexPageRe = regexp.MustCompile(`/index(\d+)\.html$`)

// Ensure IndexParser implements pttcrawl.IndexParser at compile time.
var _ pttcrawl.IndexParser = (*IndexParser)(nil)

// IndexParser reads PTT board index pages.
type IndexParser struct{}

// NewIndexParser creates a new IndexParser.
func NewIndexParser() *IndexParser {
	return &IndexParser{}
}

// ParseIndex returns the article links of an index page in document order.
func (p *IndexParser) ParseIndex(rawHTML string) ([]pttcrawl.IndexEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pttcrawl.Errorf(pttcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	var entries []pttcrawl.IndexEntry
	doc.Find("div.r-ent").Each(func(_ int, s *goquery.Selection) {
		a := s.Find("div.title a[href]").First()
		href, ok := a.Attr("href")
		if !ok || href == "" {
			// Deleted articles keep their row but lose the link.
			return
		}

		id := articleIDFromHref(href)
		if id == "" {
			return
		}

		entries = append(entries, pttcrawl.IndexEntry{
			ArticleID: id,
			Href:      href,
			Title:     strings.TrimSpace(a.Text()),
		})
	})

	return entries, nil
}

// LastPage returns one past the page number of the "previous page" button,
// or 1 when the button is missing or carries no page number.
func (p *IndexParser) LastPage(rawHTML string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return 1
	}

	last := 1
	doc.Find("div.btn-group-paging a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(s.Text(), prevPageMarker) {
			return true
		}
		href, _ := s.Attr("href")
		m := indexPageRe.FindStringSubmatch(href)
		if m == nil {
			return false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return false
		}
		last = n + 1
		return false
	})

	return last
}

// articleIDFromHref extracts the article ID from a link such as
// /bbs/Stock/M.1672628645.A.1F2.html.
func articleIDFromHref(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, ".html")
}
