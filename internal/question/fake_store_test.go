package question

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/felayo/trivia-api/internal/db/repository"
	sqlcgen "github.com/felayo/trivia-api/internal/db/sqlc"
)

// memoryStore satisfies both repository store method sets in memory.
type memoryStore struct {
	mu         sync.Mutex
	nextID     int32
	questions  []sqlcgen.Question
	categories []sqlcgen.Category
	failWith   error
}

func newMemoryStore(categories ...sqlcgen.Category) *memoryStore {
	return &memoryStore{nextID: 1, categories: categories}
}

func defaultCategories() []sqlcgen.Category {
	return []sqlcgen.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
	}
}

func (s *memoryStore) add(text string, category int32) sqlcgen.Question {
	q, _ := s.CreateQuestion(context.Background(), sqlcgen.CreateQuestionParams{
		Question: text, Answer: "answer to " + text, Category: category, Difficulty: 1,
	})
	return q
}

func (s *memoryStore) ListCategories(context.Context) ([]sqlcgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]sqlcgen.Category(nil), s.categories...), nil
}

func (s *memoryStore) GetCategory(_ context.Context, id int32) (sqlcgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return sqlcgen.Category{}, s.failWith
	}
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return sqlcgen.Category{}, pgx.ErrNoRows
}

func (s *memoryStore) ListQuestions(context.Context) ([]sqlcgen.Question, error) {
	return s.filter(func(sqlcgen.Question) bool { return true })
}

func (s *memoryStore) ListQuestionsByCategory(_ context.Context, category int32) ([]sqlcgen.Question, error) {
	return s.filter(func(q sqlcgen.Question) bool { return q.Category == category })
}

// SearchQuestions unescapes the LIKE pattern and does a plain substring match.
func (s *memoryStore) SearchQuestions(_ context.Context, pattern string) ([]sqlcgen.Question, error) {
	term := strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`).Replace(pattern)
	term = strings.ToLower(term)
	return s.filter(func(q sqlcgen.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), term)
	})
}

func (s *memoryStore) GetQuestion(_ context.Context, id int32) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return sqlcgen.Question{}, s.failWith
	}
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return sqlcgen.Question{}, pgx.ErrNoRows
}

func (s *memoryStore) CreateQuestion(_ context.Context, arg sqlcgen.CreateQuestionParams) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return sqlcgen.Question{}, s.failWith
	}
	q := sqlcgen.Question{
		ID:         s.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	s.nextID++
	s.questions = append(s.questions, q)
	return q, nil
}

func (s *memoryStore) DeleteQuestion(_ context.Context, id int32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memoryStore) filter(keep func(sqlcgen.Question) bool) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []sqlcgen.Question
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memoryStore) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

var errStoreDown = errors.New("store down")

func newTestService(store *memoryStore, opts ServiceOptions) *Service {
	return NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		opts,
	)
}
