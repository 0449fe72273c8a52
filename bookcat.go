// Package bookcat provides a bookstore catalog scraper. It crawls a
// storefront in four passes (navigation, category, product, product
// detail), extracts structured records with CSS selectors, and upserts
// them into a relational catalog keyed by natural identifiers (slug,
// source URL). Each scrape invocation is tracked as a job with a
// monotonic status lifecycle.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// rod/, goquery/).
package bookcat
