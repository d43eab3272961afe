// Package sqlite provides a SQLite-backed trivia store with the same method
// set as the generated Postgres queries.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/felayo/trivia-api/internal/db/migrations"
	sqlcgen "github.com/felayo/trivia-api/internal/db/sqlc"
)

// Store persists trivia data in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite admits one writer at a time.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	dir, err := migrations.Dir("sqlite")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, dir)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// Ping verifies the database handle is usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

const questionColumns = "id, question, answer, category, difficulty"

// ListCategories returns every category ordered by id.
func (s *Store) ListCategories(ctx context.Context) ([]sqlcgen.Category, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []sqlcgen.Category
	for rows.Next() {
		var c sqlcgen.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// GetCategory returns one category; sql.ErrNoRows when absent.
func (s *Store) GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error) {
	var c sqlcgen.Category
	err := s.sqlDB.QueryRowContext(ctx, `SELECT id, type FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Type)
	return c, err
}

func (s *Store) ListQuestions(ctx context.Context) ([]sqlcgen.Question, error) {
	return s.queryQuestions(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
}

func (s *Store) ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error) {
	return s.queryQuestions(ctx, `SELECT `+questionColumns+` FROM questions WHERE category = ? ORDER BY id`, category)
}

// SearchQuestions matches pattern as a case-insensitive substring. pattern
// must already have LIKE wildcards escaped with a backslash.
func (s *Store) SearchQuestions(ctx context.Context, pattern string) ([]sqlcgen.Question, error) {
	return s.queryQuestions(ctx,
		`SELECT `+questionColumns+` FROM questions
		WHERE LOWER(question) LIKE '%' || LOWER(?) || '%' ESCAPE '\'
		ORDER BY id`, pattern)
}

// GetQuestion returns one question; sql.ErrNoRows when absent.
func (s *Store) GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error) {
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id)
	return scanQuestion(row)
}

func (s *Store) CreateQuestion(ctx context.Context, arg sqlcgen.CreateQuestionParams) (sqlcgen.Question, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO questions (question, answer, category, difficulty)
		VALUES (?, ?, ?, ?)
		RETURNING `+questionColumns,
		arg.Question, arg.Answer, arg.Category, arg.Difficulty)
	return scanQuestion(row)
}

// DeleteQuestion removes one question and reports the affected row count.
func (s *Store) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (sqlcgen.Question, error) {
	var q sqlcgen.Question
	err := row.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty)
	return q, err
}

func (s *Store) queryQuestions(ctx context.Context, query string, args ...any) ([]sqlcgen.Question, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []sqlcgen.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, q)
	}
	return items, rows.Err()
}
