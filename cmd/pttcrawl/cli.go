package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pttcrawl"
	"github.com/fwojciec/pttcrawl/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Crawler *crawl.Crawler

	// RangeStore and ArticleStore open a store for one output name.
	RangeStore   func(name string) pttcrawl.RecordStore
	ArticleStore func(name string) pttcrawl.RecordStore

	// Target describes where records saved under name end up.
	Target func(name string) string

	Articles pttcrawl.ArticleService
	Tallies  pttcrawl.TallyStore
	EntityID int
	Now      func() time.Time
}

// Globals are flags shared by every command. Zero values defer to the
// config file.
type Globals struct {
	Out     string        `short:"o" default:"." help:"Directory for JSON output"`
	DB      string        `name:"db" help:"SQLite database path (stores records in SQLite instead of JSON files)"`
	Timeout time.Duration `short:"t" help:"Fetch timeout per page (default: 3s)"`
	Delay   time.Duration `short:"d" help:"Delay between page fetches (default: 100ms)"`
	Config  string        `short:"c" help:"YAML config file"`
	Verbose bool          `short:"v" help:"Log every fetch and parse to stderr"`
}

func (g *Globals) apply(cfg *pttcrawl.Config) {
	if g.DB != "" {
		cfg.DBPath = g.DB
	}
	if g.Timeout > 0 {
		cfg.Timeout = g.Timeout
	}
	if g.Delay > 0 {
		cfg.Delay = g.Delay
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals

	Range   RangeCmd   `cmd:"" help:"Crawl every article on a range of board index pages"`
	Article ArticleCmd `cmd:"" help:"Crawl a single article"`
	Tally   TallyCmd   `cmd:"" help:"Count articles per posting date and store the counts"`
	List    ListCmd    `cmd:"" help:"List articles stored in the database"`
	Show    ShowCmd    `cmd:"" help:"Print a stored article as JSON"`
	Counts  CountsCmd  `cmd:"" help:"Print stored per-day article counts"`
}

// RangeCmd is the "range" subcommand.
type RangeCmd struct {
	Board  string   `arg:"" help:"Board name"`
	Start  int      `short:"s" required:"" help:"First index page (negative counts back from the newest page)"`
	End    int      `short:"e" default:"-1" help:"Last index page (-1 for the newest page)"`
	Author []string `short:"a" name:"author" help:"Keep only articles whose author contains this text (repeatable)"`
}

// ArticleCmd is the "article" subcommand.
type ArticleCmd struct {
	Board     string   `arg:"" help:"Board name"`
	ArticleID string   `arg:"" name:"id" help:"Article ID, e.g. M.1672628645.A.1F2"`
	Author    []string `short:"a" name:"author" help:"Keep the article only if its author contains this text (repeatable)"`
}

// TallyCmd is the "tally" subcommand.
type TallyCmd struct {
	Board    string `arg:"" help:"Board name"`
	Start    int    `short:"s" required:"" help:"First index page (negative counts back from the newest page)"`
	End      int    `short:"e" default:"-1" help:"Last index page (-1 for the newest page)"`
	EntityID int    `name:"entity-id" help:"Entity the counts are stored under (default: 6)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Board  string `arg:"" optional:"" help:"Board name (all boards if omitted)"`
	Author string `short:"a" help:"Keep only articles whose author contains this text"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of articles to list (0 for no limit)"`
	Offset int    `help:"Number of articles to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ArticleID string `arg:"" name:"id" help:"Article ID, e.g. M.1672628645.A.1F2"`
}

// CountsCmd is the "counts" subcommand.
type CountsCmd struct {
	EntityID int `name:"entity-id" help:"Entity whose counts to print (default: 6)"`
}
