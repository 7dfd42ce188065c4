package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pttcrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pttcrawl.RecordStore = (*RecordStore)(nil)

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// RecordStore implements pttcrawl.RecordStore using a single transaction.
// Articles are upserted by article ID. Error records carry no article and
// are not persisted.
type RecordStore struct {
	db *DB
	tx *sql.Tx

	// Now returns the fetch timestamp of saved articles. Defaults to time.Now.
	Now func() time.Time
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db, Now: time.Now}
}

func (s *RecordStore) Save(ctx context.Context, r *pttcrawl.Record) error {
	if r == nil || r.IsError() {
		return nil
	}
	a := r.Article
	if err := a.Validate(); err != nil {
		return err
	}

	reactions := a.Reactions
	if reactions == nil {
		reactions = []pttcrawl.Reaction{}
	}
	reactionsJSON, err := json.Marshal(reactions)
	if err != nil {
		return fmt.Errorf("failed to encode reactions: %w", err)
	}

	if s.tx == nil {
		tx, err := s.db.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		s.tx = tx
	}

	_, err = s.tx.ExecContext(ctx, `
		INSERT INTO articles (id, article_id, board, url, title, author, date, content, content_hash, origin_ip, reactions, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (article_id) DO UPDATE SET
			board = excluded.board,
			url = excluded.url,
			title = excluded.title,
			author = excluded.author,
			date = excluded.date,
			content = excluded.content,
			content_hash = excluded.content_hash,
			origin_ip = excluded.origin_ip,
			reactions = excluded.reactions,
			fetched_at = excluded.fetched_at
	`, uuid.New().String(), a.ArticleID, a.Board, a.URL, a.Title, a.Author, a.Date, a.Content,
		hashContent(a.Content), a.OriginIP, string(reactionsJSON), s.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save article %s: %w", a.ArticleID, err)
	}
	return nil
}

func (s *RecordStore) Commit() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

func (s *RecordStore) Abort() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	return err
}

// Ensure ArticleService implements pttcrawl.ArticleService.
var _ pttcrawl.ArticleService = (*ArticleService)(nil)

// ArticleService reads stored articles.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

const articleColumns = "id, article_id, board, url, title, author, date, content, content_hash, origin_ip, reactions, fetched_at"

// FindArticleByID retrieves an article by its board article ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, articleID string) (*pttcrawl.StoredArticle, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE article_id = ?", articleID)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, pttcrawl.Errorf(pttcrawl.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindArticles retrieves articles matching the filter, newest fetch first.
func (s *ArticleService) FindArticles(ctx context.Context, filter pttcrawl.ArticleFilter) ([]*pttcrawl.StoredArticle, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.Board != nil {
		query.WriteString(" AND board = ?")
		args = append(args, *filter.Board)
	}
	if filter.Author != nil {
		query.WriteString(" AND instr(lower(author), lower(?)) > 0")
		args = append(args, *filter.Author)
	}

	query.WriteString(" ORDER BY fetched_at DESC, article_id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*pttcrawl.StoredArticle
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*pttcrawl.StoredArticle, error) {
	a := &pttcrawl.StoredArticle{Article: &pttcrawl.Article{}}
	var reactions, fetchedAt string

	if err := row.Scan(&a.ID, &a.ArticleID, &a.Board, &a.URL, &a.Title, &a.Author, &a.Date,
		&a.Content, &a.ContentHash, &a.OriginIP, &reactions, &fetchedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(reactions), &a.Reactions); err != nil {
		return nil, fmt.Errorf("failed to decode reactions: %w", err)
	}
	a.Summary = pttcrawl.Summarize(a.Reactions)

	var err error
	a.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	return a, nil
}
