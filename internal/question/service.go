package question

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/felayo/trivia-api/internal/db/repository"
	sqlcgen "github.com/felayo/trivia-api/internal/db/sqlc"
	"github.com/felayo/trivia-api/internal/pagination"
)

// Service answers trivia queries and applies question mutations.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	perPage    int
	intn       func(n int) int
	metrics    *Metrics
}

// ServiceOptions tunes Service behavior. Zero values select defaults.
type ServiceOptions struct {
	QuestionsPerPage int
	// Intn returns a uniform value in [0, n); defaults to math/rand/v2.IntN.
	Intn    func(n int) int
	Metrics *Metrics
}

func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, opts ServiceOptions) *Service {
	perPage := opts.QuestionsPerPage
	if perPage <= 0 {
		perPage = pagination.DefaultPageSize
	}
	intn := opts.Intn
	if intn == nil {
		intn = rand.IntN
	}
	return &Service{
		questions:  questions,
		categories: categories,
		perPage:    perPage,
		intn:       intn,
		metrics:    opts.Metrics,
	}
}

// Categories returns every category keyed by id.
func (s *Service) Categories(ctx context.Context) (CategoryMap, error) {
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNotFound
	}
	return categories, nil
}

// ListQuestions returns one page of questions ordered by id. An empty page,
// whether the table is empty or page is past the end, is ErrNotFound.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}
	current := pagination.Paginate(page, toDomainList(rows), s.perPage)
	if len(current) == 0 {
		return QuestionPage{}, ErrNotFound
	}
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{
		Questions:  current,
		Total:      len(rows),
		Categories: categories,
	}, nil
}

// Search returns every question whose text contains term, ignoring case.
// Whitespace is a valid term; only an empty term is ErrNotFound.
func (s *Service) Search(ctx context.Context, term string) ([]Question, error) {
	if term == "" {
		return nil, ErrNotFound
	}
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return toDomainList(rows), nil
}

// QuestionsByCategory returns every question in category.
func (s *Service) QuestionsByCategory(ctx context.Context, category int32) ([]Question, error) {
	rows, err := s.questions.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list category %d: %w", category, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return toDomainList(rows), nil
}

// DrawQuizQuestion picks a uniformly random question from the requested
// category (or all categories for AnyCategory) that is not in
// PreviousQuestions. It returns ErrNotFound when the category has no
// questions at all and (nil, nil) when every one has been served.
func (s *Service) DrawQuizQuestion(ctx context.Context, req QuizRequest) (*Question, error) {
	category := AnyCategory
	if req.QuizCategory != nil {
		category = int32(req.QuizCategory.ID)
	}

	var (
		eligible []sqlcgen.Question
		err      error
	)
	if category == AnyCategory {
		eligible, err = s.questions.List(ctx)
	} else {
		eligible, err = s.questions.ListByCategory(ctx, category)
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz questions: %w", err)
	}
	if len(eligible) == 0 {
		s.metrics.quizDraw(outcomeEmpty)
		return nil, ErrNotFound
	}

	seen := make(map[int32]struct{}, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		seen[id] = struct{}{}
	}
	unseen := make([]sqlcgen.Question, 0, len(eligible))
	for _, q := range eligible {
		if _, ok := seen[q.ID]; !ok {
			unseen = append(unseen, q)
		}
	}
	if len(unseen) == 0 {
		s.metrics.quizDraw(outcomeExhausted)
		return nil, nil
	}

	picked := toDomain(unseen[s.intn(len(unseen))])
	s.metrics.quizDraw(outcomeServed)
	return &picked, nil
}

// CreateQuestion validates and stores a new question.
func (s *Service) CreateQuestion(ctx context.Context, in NewQuestion) (Question, error) {
	if strings.TrimSpace(in.Question) == "" || strings.TrimSpace(in.Answer) == "" ||
		in.Category == nil || in.Difficulty == nil {
		return Question{}, ErrInvalidQuestion
	}
	category := int32(*in.Category)

	if _, err := s.categories.Get(ctx, category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Question{}, fmt.Errorf("category %d: %w", category, ErrUnknownCategory)
		}
		return Question{}, fmt.Errorf("lookup category %d: %w", category, err)
	}

	row, err := s.questions.Create(ctx, sqlcgen.CreateQuestionParams{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   category,
		Difficulty: int32(*in.Difficulty),
	})
	if err != nil {
		return Question{}, fmt.Errorf("create question: %w", err)
	}
	s.metrics.created()
	return toDomain(row), nil
}

// DeleteQuestion removes question id and returns page of what remains.
func (s *Service) DeleteQuestion(ctx context.Context, id int32, page int) (DeleteResult, error) {
	if _, err := s.questions.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return DeleteResult{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
		}
		return DeleteResult{}, fmt.Errorf("lookup question %d: %w", id, err)
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return DeleteResult{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
		}
		return DeleteResult{}, err
	}
	s.metrics.deleted()

	rows, err := s.questions.List(ctx)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("list remaining questions: %w", err)
	}
	return DeleteResult{
		Deleted:   id,
		Questions: pagination.Paginate(page, toDomainList(rows), s.perPage),
		Remaining: len(rows),
	}, nil
}

func (s *Service) categoryMap(ctx context.Context) (CategoryMap, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make(CategoryMap, len(rows))
	for _, c := range rows {
		out[c.ID] = c.Type
	}
	return out, nil
}
