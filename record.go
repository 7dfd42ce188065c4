package pttcrawl

import (
	"bytes"
	"context"
	"encoding/json"
)

// InvalidURL is the error message of records for pages that could not be fetched.
const InvalidURL = "invalid url"

// Record is the outcome written for one article page: either a parsed
// article or an error record. A nil *Record means the article was filtered
// out and must not be stored.
type Record struct {
	Article *Article
	Error   string
}

// NewRecord wraps an article.
func NewRecord(a *Article) *Record {
	return &Record{Article: a}
}

// InvalidURLRecord returns the record written in place of an article whose
// page could not be fetched.
func InvalidURLRecord() *Record {
	return &Record{Error: InvalidURL}
}

// IsError reports whether the record is an error record.
func (r *Record) IsError() bool {
	return r.Article == nil
}

type errorRecord struct {
	Error string `json:"error"`
}

// MarshalJSON encodes the article object, or {"error": ...} for error records.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Article == nil {
		return marshal(errorRecord{Error: r.Error})
	}
	a := *r.Article
	if a.Reactions == nil {
		a.Reactions = []Reaction{}
	}
	return marshal(a)
}

// EncodeRecord serializes a record. Non-ASCII text and markup characters
// are written as-is.
func EncodeRecord(r *Record) ([]byte, error) {
	return marshal(r)
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// RecordStore persists records with atomic semantics.
// Save writes to a pending location; Commit makes the records permanent;
// Abort discards them.
type RecordStore interface {
	Save(ctx context.Context, r *Record) error
	Commit() error
	Abort() error
}
