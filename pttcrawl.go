// Package pttcrawl crawls discussion-board articles from the web version of
// PTT, extracts metadata, body text, and reader reactions from each article
// page, and serializes them as JSON records or per-day article counts.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package pttcrawl
