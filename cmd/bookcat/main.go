package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bookcat"
	"github.com/fwojciec/bookcat/goquery"
	bookhttp "github.com/fwojciec/bookcat/http"
	"github.com/fwojciec/bookcat/rod"
	"github.com/fwojciec/bookcat/scrape"
	bookslog "github.com/fwojciec/bookcat/slog"
	"github.com/fwojciec/bookcat/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	NavigationService bookcat.NavigationService
	CategoryService   bookcat.CategoryService
	ProductService    bookcat.ProductService
	JobService        bookcat.JobService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
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
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bookcat"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Bind(&cli.Globals),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bookcat --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Globals.DB != "" {
		m.DBPath = cli.Globals.DB
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set BOOKCAT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.NavigationService = sqlite.NewNavigationService(m.DB)
	m.CategoryService = sqlite.NewCategoryService(m.DB)
	m.ProductService = sqlite.NewProductService(m.DB)
	m.JobService = bookslog.NewLoggingJobService(sqlite.NewJobService(m.DB), logger)

	deps.DB = m.DB
	deps.Navigations = m.NavigationService
	deps.Categories = m.CategoryService
	deps.Products = m.ProductService
	deps.Details = sqlite.NewProductDetailService(m.DB)
	deps.Jobs = m.JobService
	deps.Cache = sqlite.NewCacheService(m.DB)
	deps.History = sqlite.NewHistoryService(m.DB)

	// Global flags may precede the command word, so resolve the selected
	// command from the parsed context rather than from args.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")
	if cmd == "scrape" || cmd == "crawl" {
		var fetcher bookcat.Fetcher
		if cli.Globals.NoBrowser {
			fetcher = bookhttp.NewFetcher()
		} else {
			f, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --no-browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		}
		defer fetcher.Close()

		orchestrator := &scrape.Orchestrator{
			Fetcher:     bookslog.NewLoggingFetcher(fetcher, logger),
			Extractor:   goquery.NewExtractor(),
			Navigations: deps.Navigations,
			Categories:  deps.Categories,
			Products:    deps.Products,
			Details:     deps.Details,
			Jobs:        deps.Jobs,
			Cache:       deps.Cache,
			Limiter:     scrape.NewLimiter(time.Duration(cli.Globals.Delay * float64(time.Second))),
			ListingURLs: cli.Globals.Listing,
			DetailLimit: cli.Globals.DetailLimit,
			Logger:      logger,
		}

		deps.Runner = scrape.NewRunner(orchestrator, logger)
		deps.Runner.Start(ctx)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("BOOKCAT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookcat.db"
	}
	dir := filepath.Join(home, ".bookcat")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "bookcat.db")
}
