package repository

import (
	"context"
	"fmt"
	"strings"

	sqlcgen "github.com/felayo/trivia-api/internal/db/sqlc"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]sqlcgen.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error)
	SearchQuestions(ctx context.Context, pattern string) ([]sqlcgen.Question, error)
	GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error)
	CreateQuestion(ctx context.Context, arg sqlcgen.CreateQuestionParams) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
}

// QuestionRepository exposes typed question operations over either store.
type QuestionRepository struct {
	store questionStore
}

// NewQuestionRepository wraps sqlc Queries (or the SQLite store) for question access.
func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]sqlcgen.Question, error) {
	return r.store.ListQuestions(ctx)
}

// ListByCategory returns the questions of one category ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error) {
	return r.store.ListQuestionsByCategory(ctx, category)
}

// Search finds questions whose text contains term, ignoring case. LIKE
// wildcards in term match literally.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	return r.store.SearchQuestions(ctx, escapeLike(term))
}

// Get fetches one question, returning ErrNotFound when absent.
func (r *QuestionRepository) Get(ctx context.Context, id int32) (sqlcgen.Question, error) {
	q, err := r.store.GetQuestion(ctx, id)
	if err != nil {
		return sqlcgen.Question{}, translate(err)
	}
	return q, nil
}

// Create inserts a question and returns the stored row with its generated id.
func (r *QuestionRepository) Create(ctx context.Context, params sqlcgen.CreateQuestionParams) (sqlcgen.Question, error) {
	return r.store.CreateQuestion(ctx, params)
}

// Delete removes a question, returning ErrNotFound when nothing was deleted.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) error {
	n, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
