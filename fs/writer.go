// Package fs provides file-based storage for article records.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/pttcrawl"
)

// RangeFileName returns the output file name of a page-range run.
// Example: Gossiping, 100, 102 → Gossiping-100-102.json
func RangeFileName(board string, start, end int) string {
	return board + "-" + strconv.Itoa(start) + "-" + strconv.Itoa(end) + ".json"
}

// ArticleFileName returns the output file name of a single-article run.
// Example: Gossiping, M.1.A.2 → Gossiping-M.1.A.2.json
func ArticleFileName(board, articleID string) string {
	return board + "-" + articleID + ".json"
}

// checkName rejects names that would escape the output directory.
func checkName(name string) error {
	if name == "" {
		return pttcrawl.Errorf(pttcrawl.EINVALID, "file name required")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return pttcrawl.Errorf(pttcrawl.EINVALID, "path traversal in file name %q", name)
	}
	return nil
}

// Writer writes single records as JSON files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteRecord writes one record to baseDir/name. The file is written to a
// temporary name first and renamed into place.
func (w *Writer) WriteRecord(ctx context.Context, name string, r *pttcrawl.Record) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := pttcrawl.EncodeRecord(r)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	final := filepath.Join(w.baseDir, name)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return final, nil
}

// Ensure RecordFile implements pttcrawl.RecordStore at compile time.
var _ pttcrawl.RecordStore = (*RecordFile)(nil)

// RecordFile is a RecordStore for a single record. The last saved record
// is written as its own JSON document on Commit.
type RecordFile struct {
	w    *Writer
	name string
	rec  *pttcrawl.Record
}

// NewRecordFile creates a RecordFile that writes to baseDir/name.
func NewRecordFile(baseDir, name string) *RecordFile {
	return &RecordFile{w: NewWriter(baseDir), name: name}
}

func (f *RecordFile) Save(ctx context.Context, r *pttcrawl.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.rec = r
	return nil
}

// Commit writes the saved record. Nothing is written when no record was saved.
func (f *RecordFile) Commit() error {
	if f.rec == nil {
		return nil
	}
	_, err := f.w.WriteRecord(context.Background(), f.name, f.rec)
	return err
}

func (f *RecordFile) Abort() error {
	f.rec = nil
	return nil
}
