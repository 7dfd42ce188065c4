// Package goquery implements PTT page parsing on top of goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pttcrawl"
	"golang.org/x/net/html"
)

// Markers of footer lines excluded from article bodies.
const (
	originStationMarker = "※"
	fromMarker          = "◆"
	separatorMarker     = "--"

	// originStationLine introduces the line carrying the poster's address.
	originStationLine = "※ 發信站:"
)

var ipv4Re = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

// Ensure Parser implements pttcrawl.ArticleParser at compile time.
var _ pttcrawl.ArticleParser = (*Parser)(nil)

// Parser extracts articles from PTT article pages.
//
// The parsed tree is never modified. Metadata and reaction nodes are
// collected in separate passes and skipped when the body text is gathered.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads metadata, reactions, and body text from an article page.
func (p *Parser) Parse(rawHTML string, src pttcrawl.Source) (*pttcrawl.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pttcrawl.Errorf(pttcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	main := doc.Find("#main-content").First()
	if main.Length() == 0 {
		return nil, pttcrawl.Errorf(pttcrawl.EINVALID, "main content not found in %s", src.URL)
	}

	excluded := make(nodeSet)
	meta := extractMetadata(main, excluded)
	reactions := extractReactions(main, excluded)

	return &pttcrawl.Article{
		URL:       src.URL,
		Board:     src.Board,
		ArticleID: src.ArticleID,
		Title:     meta.title,
		Author:    meta.author,
		Date:      meta.date,
		Content:   extractBody(main, excluded, src.ArticleID),
		OriginIP:  extractOriginIP(main),
		Reactions: reactions,
		Summary:   pttcrawl.Summarize(reactions),
	}, nil
}

// nodeSet holds nodes whose subtrees the body pass skips.
type nodeSet map[*html.Node]bool

func (s nodeSet) add(sel *goquery.Selection) {
	for _, n := range sel.Nodes {
		s[n] = true
	}
}

type metadata struct {
	author string
	title  string
	date   string
}

// extractMetadata reads the author, title, and date entries of the
// metadata block, in that order.
func extractMetadata(main *goquery.Selection, excluded nodeSet) metadata {
	metas := main.Find("div.article-metaline")
	if metas.Length() == 0 {
		return metadata{}
	}

	var fields [3]string
	metas.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= len(fields) {
			return false
		}
		fields[i] = firstText(s.Find("span.article-meta-value").First())
		return true
	})

	excluded.add(metas)
	excluded.add(main.Find("div.article-metaline-right"))

	return metadata{author: fields[0], title: fields[1], date: fields[2]}
}

// reactionResult is the outcome of decoding one reaction node.
// ok is false for malformed entries, which are skipped.
type reactionResult struct {
	reaction pttcrawl.Reaction
	ok       bool
}

// extractReactions decodes every reaction node in document order and keeps
// the well-formed ones.
func extractReactions(main *goquery.Selection, excluded nodeSet) []pttcrawl.Reaction {
	pushes := main.Find("div.push")
	excluded.add(pushes)

	results := make([]reactionResult, 0, pushes.Length())
	pushes.Each(func(_ int, s *goquery.Selection) {
		results = append(results, decodeReaction(s))
	})

	reactions := make([]pttcrawl.Reaction, 0, len(results))
	for _, r := range results {
		if r.ok {
			reactions = append(reactions, r.reaction)
		}
	}
	return reactions
}

func decodeReaction(s *goquery.Selection) reactionResult {
	tag := s.Find("span.push-tag").First()
	user := s.Find("span.push-userid").First()
	content := s.Find("span.push-content").First()
	stamp := s.Find("span.push-ipdatetime").First()
	if tag.Length() == 0 || user.Length() == 0 || content.Length() == 0 || stamp.Length() == 0 {
		return reactionResult{}
	}

	tagText := trimField(tag.Text())
	return reactionResult{
		reaction: pttcrawl.Reaction{
			Kind:      pttcrawl.ClassifyTag(tagText),
			Tag:       tagText,
			UserID:    trimField(user.Text()),
			Comment:   trimField(dropFirstRune(strings.Join(textNodes(content.Nodes[0], nil), " "))),
			Timestamp: trimField(stamp.Text()),
		},
		ok: true,
	}
}

// extractBody joins the remaining text of the article, leaving out footer
// lines, the article's own link, and excluded nodes.
func extractBody(main *goquery.Selection, excluded nodeSet, articleID string) string {
	var parts []string
	for _, text := range textNodes(main.Nodes[0], excluded) {
		frag := strings.TrimSpace(text)
		if frag == "" || isFooterLine(frag) {
			continue
		}
		frag = pttcrawl.Normalize(frag)
		if frag == "" {
			continue
		}
		if articleID != "" && strings.Contains(frag, articleID) {
			continue
		}
		parts = append(parts, frag)
	}
	return pttcrawl.CollapseWhitespace(strings.Join(parts, " "))
}

func isFooterLine(frag string) bool {
	return strings.HasPrefix(frag, originStationMarker) ||
		strings.HasPrefix(frag, fromMarker) ||
		strings.HasPrefix(frag, separatorMarker)
}

// extractOriginIP returns the first IPv4 address on the origin station line
// of the unfiltered document.
func extractOriginIP(main *goquery.Selection) string {
	for _, text := range textNodes(main.Nodes[0], nil) {
		if !strings.Contains(text, originStationLine) {
			continue
		}
		if ip := ipv4Re.FindString(text); ip != "" {
			return ip
		}
		return pttcrawl.NoOriginIP
	}
	return pttcrawl.NoOriginIP
}

// textNodes returns the text of every text node below n in document order,
// skipping comments, scripts, styles, and excluded subtrees.
func textNodes(n *html.Node, excluded nodeSet) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				out = append(out, c.Data)
			case html.ElementNode:
				if excluded[c] || c.Data == "script" || c.Data == "style" {
					continue
				}
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// firstText returns the first text node inside the selection.
func firstText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	texts := textNodes(sel.Nodes[0], nil)
	if len(texts) == 0 {
		return ""
	}
	return texts[0]
}

func trimField(s string) string {
	return strings.Trim(s, " \t\n\r")
}

func dropFirstRune(s string) string {
	for i := range s {
		if i > 0 {
			return s[i:]
		}
	}
	return ""
}
