package domain

import "time"

type Answer struct {
	AnswerID   string    `json:"id" dynamodbav:"answer_id"`
	Text       string    `json:"text" dynamodbav:"text"`
	AuthorID   string    `json:"author_id" dynamodbav:"author_id"`
	QuestionID string    `json:"question_id" dynamodbav:"question_id"`
	Likes      []string  `json:"likes" dynamodbav:"likes"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
}

type AddAnswerRequest struct {
	Text string `json:"text" validate:"required"`
}

// AnswerView is an answer with its author name resolved for display.
type AnswerView struct {
	Answer
	AuthorName string `json:"author_name"`
	LikeCount  int    `json:"like_count"`
}
