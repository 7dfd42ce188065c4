package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pttcrawl"
	"github.com/fwojciec/pttcrawl/crawl"
	"github.com/fwojciec/pttcrawl/fs"
	"github.com/fwojciec/pttcrawl/goquery"
	ptthttp "github.com/fwojciec/pttcrawl/http"
	pttslog "github.com/fwojciec/pttcrawl/slog"
	"github.com/fwojciec/pttcrawl/sqlite"
	"github.com/fwojciec/pttcrawl/yaml"
)

// DefaultDBPath is used by database-only commands when no database is
// configured.
const DefaultDBPath = "pttcrawl.db"

// dbCommands always run against a database.
var dbCommands = map[string]bool{
	"tally":  true,
	"list":   true,
	"show":   true,
	"counts": true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads environment overrides. Defaults to os.Getenv.
	Getenv func(string) string

	// SQLite database, opened when a database path is configured.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    time.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pttcrawl"),
		kong.Description("Crawl PTT board articles into JSON files or SQLite"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pttcrawl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := yaml.Load(cli.Config, m.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", pttcrawl.ErrorMessage(err))
		return err
	}
	cli.Globals.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	var fetcher pttcrawl.Fetcher = ptthttp.NewFetcher(ptthttp.WithTimeout(cfg.Timeout))
	var parserSvc pttcrawl.ArticleParser = goquery.NewParser()
	var index pttcrawl.IndexParser = goquery.NewIndexParser()
	if cli.Verbose {
		fetcher = pttslog.NewLoggingFetcher(fetcher, logger)
		parserSvc = pttslog.NewLoggingArticleParser(parserSvc, logger)
		index = pttslog.NewLoggingIndexParser(index, logger)
	}
	defer fetcher.Close()

	deps.Logger = logger
	deps.EntityID = cfg.EntityID
	deps.Crawler = &crawl.Crawler{
		BaseURL:     cfg.BaseURL,
		Fetcher:     fetcher,
		Parser:      parserSvc,
		Index:       index,
		RateLimiter: crawl.NewDomainLimiter(cfg.Delay),
	}

	dbPath := cfg.DBPath
	if dbPath == "" && dbCommands[strings.Fields(kongCtx.Command())[0]] {
		dbPath = DefaultDBPath
	}

	if dbPath != "" {
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set %s or --db to use a different database path\n", yaml.DBPathEnv)
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		deps.Target = func(string) string { return dbPath }
		deps.RangeStore = func(string) pttcrawl.RecordStore { return sqlite.NewRecordStore(m.DB) }
		deps.ArticleStore = deps.RangeStore

		var articles pttcrawl.ArticleService = sqlite.NewArticleService(m.DB)
		var tallies pttcrawl.TallyStore = sqlite.NewTallyService(m.DB)
		if cli.Verbose {
			articles = pttslog.NewLoggingArticleService(articles, logger)
			tallies = pttslog.NewLoggingTallyStore(tallies, logger)
		}
		deps.Articles = articles
		deps.Tallies = tallies
	} else {
		out := cli.Out
		deps.Target = func(name string) string { return fs.NewRecordStore(out, name).Path() }
		deps.RangeStore = func(name string) pttcrawl.RecordStore { return fs.NewRecordStore(out, name) }
		deps.ArticleStore = func(name string) pttcrawl.RecordStore { return fs.NewRecordFile(out, name) }
	}

	return kongCtx.Run(deps)
}
