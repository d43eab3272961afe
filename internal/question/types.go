package question

import (
	"bytes"
	"fmt"
	"strconv"

	sqlcgen "github.com/felayo/trivia-api/internal/db/sqlc"
)

// AnyCategory is the quiz category id meaning "draw from every category".
const AnyCategory int32 = 0

// Question is the formatted entity delivered to clients.
type Question struct {
	ID         int32  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int32  `json:"category"`
	Difficulty int32  `json:"difficulty"`
}

// CategoryMap maps category id to its label.
type CategoryMap map[int32]string

// QuestionPage is one page of the question listing plus its context.
type QuestionPage struct {
	Questions  []Question
	Total      int
	Categories CategoryMap
}

// DeleteResult describes the collection left after a delete.
type DeleteResult struct {
	Deleted   int32
	Questions []Question
	Remaining int
}

// NewQuestion is the create payload. Pointer fields distinguish "missing"
// from zero.
type NewQuestion struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Category   *LooseInt `json:"category"`
	Difficulty *LooseInt `json:"difficulty"`
}

// QuizRequest asks for the next quiz question.
type QuizRequest struct {
	PreviousQuestions []int32       `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// QuizCategory identifies the category being played; AnyCategory for all.
type QuizCategory struct {
	ID   LooseInt `json:"id"`
	Type string   `json:"type,omitempty"`
}

// LooseInt decodes a JSON number or a numeric string. Form-driven clients
// post select values as strings.
type LooseInt int32

func (n *LooseInt) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid integer %s", data)
	}
	*n = LooseInt(v)
	return nil
}

func toDomain(row sqlcgen.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: row.Difficulty,
	}
}

func toDomainList(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out
}
