package domain

import "time"

// Vote directions recorded in a question's voter list.
const (
	VoteUp   = 1
	VoteDown = -1
	VoteNone = 0
)

// Voter is one user's current vote on a question. The voter list holds at
// most one entry per user; Upvotes/Downvotes always equal the count of
// +1/-1 entries.
type Voter struct {
	UserID string `json:"user_id" dynamodbav:"user_id"`
	Vote   int    `json:"vote" dynamodbav:"vote"`
}

type Question struct {
	QuestionID  string    `json:"id" dynamodbav:"question_id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description" dynamodbav:"description"`
	ImageURL    string    `json:"image_url,omitempty" dynamodbav:"image_url"`
	Tags        []string  `json:"tags" dynamodbav:"tags"`
	AuthorID    string    `json:"author_id" dynamodbav:"author_id"`
	Upvotes     int       `json:"upvotes" dynamodbav:"upvotes"`
	Downvotes   int       `json:"downvotes" dynamodbav:"downvotes"`
	Voters      []Voter   `json:"-" dynamodbav:"voters"`
	AnswerIDs   []string  `json:"-" dynamodbav:"answer_ids"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

// VoteBy returns the user's current vote on q, or VoteNone.
func (q *Question) VoteBy(userID string) int {
	for _, v := range q.Voters {
		if v.UserID == userID {
			return v.Vote
		}
	}
	return VoteNone
}

type AskQuestionRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags" validate:"max=5"`
	ImageURL    string   `json:"image_url"`
}

type VoteRequest struct {
	Type string `json:"type" validate:"required,oneof=upvote downvote"`
}

// QuestionView is a question resolved for display: author name attached,
// answers expanded, and the viewer's own vote included.
type QuestionView struct {
	Question
	AuthorName   string       `json:"author_name"`
	Comments     []AnswerView `json:"comments"`
	CommentCount int          `json:"comment_count"`
	UserVote     int          `json:"user_vote"`
}
