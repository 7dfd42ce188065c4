package main_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/pttcrawl"
	main "github.com/fwojciec/pttcrawl/cmd/pttcrawl"
	"github.com/fwojciec/pttcrawl/crawl"
	"github.com/fwojciec/pttcrawl/fs"
	"github.com/fwojciec/pttcrawl/goquery"
	"github.com/fwojciec/pttcrawl/mock"
)

const testBase = "https://ptt.test"

func boardIndexHTML(prev int) string {
	return fmt.Sprintf(`<html><body><div class="btn-group btn-group-paging">
<a class="btn wide" href="/bbs/Test/index1.html">最舊</a>
<a class="btn wide" href="/bbs/Test/index%d.html">&lsaquo; 上頁</a>
<a class="btn wide disabled">下頁 &rsaquo;</a>
</div></body></html>`, prev)
}

func indexHTML(ids ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="r-list-container action-bar-margin bbs-screen">`)
	for _, id := range ids {
		fmt.Fprintf(&b, `<div class="r-ent"><div class="nrec"></div><div class="title"><a href="/bbs/Test/%s.html">[問卦] %s</a></div><div class="meta"><div class="author">x</div></div></div>`, id, id)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func articleHTML(author, title, date string) string {
	return `<html><body><div id="main-content" class="bbs-screen bbs-content">` +
		`<div class="article-metaline"><span class="article-meta-tag">作者</span><span class="article-meta-value">` + author + `</span></div>` +
		`<div class="article-metaline-right"><span class="article-meta-tag">看板</span><span class="article-meta-value">Test</span></div>` +
		`<div class="article-metaline"><span class="article-meta-tag">標題</span><span class="article-meta-value">` + title + `</span></div>` +
		`<div class="article-metaline"><span class="article-meta-tag">時間</span><span class="article-meta-value">` + date + `</span></div>
內文一行
<span class="f2">※ 發信站: 批踢踢實業坊(ptt.cc), 來自: 10.0.0.1 (臺灣)
</span><div class="push"><span class="hl push-tag">推 </span><span class="f3 hl push-userid">bob</span><span class="f3 push-content">: 好</span><span class="push-ipdatetime"> 01/02 03:04
</span></div><div class="push"><span class="f1 hl push-tag">噓 </span><span class="f3 hl push-userid">eve</span><span class="f3 push-content">: 不好</span><span class="push-ipdatetime"> 01/02 03:05
</span></div></div></body></html>`
}

func pagesFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", pttcrawl.Errorf(pttcrawl.ENOTFOUND, "HTTP 404 for %s", url)
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

type testDeps struct {
	*main.Dependencies
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestDeps wires real parsers over a canned set of pages and writes
// JSON output to dir.
func newTestDeps(t *testing.T, dir string, pages map[string]string) *testDeps {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Crawler: &crawl.Crawler{
			BaseURL: testBase,
			Fetcher: pagesFetcher(pages),
			Parser:  goquery.NewParser(),
			Index:   goquery.NewIndexParser(),
		},
		RangeStore:   func(name string) pttcrawl.RecordStore { return fs.NewRecordStore(dir, name) },
		ArticleStore: func(name string) pttcrawl.RecordStore { return fs.NewRecordFile(dir, name) },
		Target:       func(name string) string { return fs.NewRecordStore(dir, name).Path() },
		EntityID:     pttcrawl.DefaultEntityID,
		Now:          func() time.Time { return time.Date(2023, 1, 4, 0, 0, 0, 0, time.UTC) },
	}
	return &testDeps{Dependencies: deps, stdout: stdout, stderr: stderr}
}

func articleURL(id string) string {
	return pttcrawl.ArticleURL(testBase, "Test", id)
}

func indexURL(page int) string {
	return pttcrawl.IndexURL(testBase, "Test", page)
}
