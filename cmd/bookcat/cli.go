package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/bookcat"
	"github.com/fwojciec/bookcat/scrape"
	"github.com/fwojciec/bookcat/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB          *sqlite.DB
	Navigations bookcat.NavigationService
	Categories  bookcat.CategoryService
	Products    bookcat.ProductService
	Details     bookcat.ProductDetailService
	Jobs        bookcat.JobService
	Cache       bookcat.CacheService
	History     bookcat.HistoryService

	// Runner is wired only for the scrape and crawl commands.
	Runner *scrape.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals

	Scrape     ScrapeCmd     `cmd:"" help:"Run a single scrape pass against a URL"`
	Crawl      CrawlCmd      `cmd:"" help:"Run all scrape passes against the configured store"`
	Jobs       JobsCmd       `cmd:"" help:"Show recent scrape jobs and status counts"`
	Sweep      SweepCmd      `cmd:"" help:"Delete expired cache entries"`
	Nav        NavCmd        `cmd:"" help:"List scraped navigation headings"`
	Categories CategoriesCmd `cmd:"" help:"List categories, optionally per navigation"`
	Products   ProductsCmd   `cmd:"" help:"List products in a category"`
	Product    ProductCmd    `cmd:"" help:"Show a single product with detail and reviews"`
	History    HistoryCmd    `cmd:"" help:"Show recent catalog page views"`
}

// Globals are flags shared by every command.
type Globals struct {
	DB          string   `env:"BOOKCAT_DB" help:"SQLite database path"`
	BaseURL     string   `env:"BOOKCAT_BASE_URL" default:"https://books.toscrape.com" help:"Store base URL"`
	Delay       float64  `env:"BOOKCAT_DELAY" default:"2" help:"Seconds between page fetches"`
	Listing     []string `env:"BOOKCAT_LISTINGS" help:"Listing page URLs visited by the product pass (repeatable)"`
	DetailLimit int      `env:"BOOKCAT_DETAIL_LIMIT" default:"10" help:"Products visited per detail pass"`
	NoBrowser   bool     `env:"BOOKCAT_NO_BROWSER" help:"Fetch with plain HTTP instead of a headless browser"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Type string `arg:"" enum:"navigation,category,product,product-detail" help:"Scrape pass to run"`
	URL  string `arg:"" optional:"" help:"Target URL (defaults to the store base URL)"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct{}

// JobsCmd is the "jobs" subcommand.
type JobsCmd struct {
	N int `short:"n" default:"20" help:"Number of recent jobs to show"`
}

// SweepCmd is the "sweep" subcommand.
type SweepCmd struct {
	Schedule string `help:"Cron expression; when set, sweep repeatedly on that schedule"`
}

// NavCmd is the "nav" subcommand.
type NavCmd struct{}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct {
	Nav string `help:"Navigation slug to filter by"`
}

// ProductsCmd is the "products" subcommand.
type ProductsCmd struct {
	Category string `arg:"" help:"Category slug"`
	Page     int    `default:"1" help:"Page number"`
	Limit    int    `default:"20" help:"Page size"`
}

// ProductCmd is the "product" subcommand.
type ProductCmd struct {
	ID      string `arg:"" help:"Product ID"`
	Session string `help:"Browsing session ID recorded in view history"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	N int `short:"n" default:"20" help:"Number of recent views to show"`
}
