package repository

import sqlcgen "github.com/felayo/trivia-api/internal/db/sqlc"

func questionRow(id int32, text string, category int32) sqlcgen.Question {
	return sqlcgen.Question{
		ID:         id,
		Question:   text,
		Answer:     "answer " + text,
		Category:   category,
		Difficulty: 1,
	}
}
