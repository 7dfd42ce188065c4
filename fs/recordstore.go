package fs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/pttcrawl"
)

// Ensure RecordStore implements pttcrawl.RecordStore at compile time.
var _ pttcrawl.RecordStore = (*RecordStore)(nil)

const (
	articlesOpen  = `{"articles": [`
	articlesSep   = ",\n"
	articlesClose = "]}"
)

// RecordStore implements pttcrawl.RecordStore with atomic update semantics.
// Records are streamed into a temporary file as elements of an "articles"
// array, then moved into place on Commit.
type RecordStore struct {
	baseDir string
	name    string

	f     *os.File
	w     *bufio.Writer
	count int
}

// NewRecordStore creates a new RecordStore.
// Records are written to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewRecordStore(baseDir, name string) *RecordStore {
	return &RecordStore{
		baseDir: baseDir,
		name:    name,
	}
}

// Path returns the path of the committed file.
func (s *RecordStore) Path() string {
	return filepath.Join(s.baseDir, s.name)
}

func (s *RecordStore) tempPath() string {
	return s.Path() + ".tmp"
}

func (s *RecordStore) open() error {
	if s.f != nil {
		return nil
	}
	if err := checkName(s.name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}
	f, err := os.Create(s.tempPath())
	if err != nil {
		return err
	}
	s.f = f
	s.w = bufio.NewWriter(f)
	_, err = s.w.WriteString(articlesOpen)
	return err
}

func (s *RecordStore) Save(ctx context.Context, r *pttcrawl.Record) error {
	if r == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := pttcrawl.EncodeRecord(r)
	if err != nil {
		return err
	}

	if err := s.open(); err != nil {
		return err
	}
	if s.count > 0 {
		if _, err := s.w.WriteString(articlesSep); err != nil {
			return err
		}
	}
	if _, err := s.w.Write(data); err != nil {
		return err
	}
	s.count++
	return nil
}

// Commit closes the array and renames the temporary file into place.
// A store with no saved records commits an empty array.
func (s *RecordStore) Commit() error {
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.w.WriteString(articlesClose); err != nil {
		return err
	}
	if err := s.w.Flush(); err != nil {
		return err
	}
	if err := s.close(); err != nil {
		return err
	}
	return os.Rename(s.tempPath(), s.Path())
}

func (s *RecordStore) Abort() error {
	if err := s.close(); err != nil {
		return err
	}
	if err := os.Remove(s.tempPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *RecordStore) close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f, s.w = nil, nil
	return err
}
