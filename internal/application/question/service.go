package question

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/debugden/api/internal/domain"
	"github.com/debugden/api/internal/pkg/id"
)

const maxTags = 5

type Service interface {
	Ask(ctx context.Context, authorID string, req domain.AskQuestionRequest) (*domain.Question, error)
	List(ctx context.Context, viewerID string) ([]domain.QuestionView, error)
	Get(ctx context.Context, questionID string) (*domain.QuestionView, error)
	AddAnswer(ctx context.Context, questionID, authorID, text string) (*domain.AnswerView, error)
	Vote(ctx context.Context, questionID, userID string, direction int) (*domain.QuestionView, error)
	Delete(ctx context.Context, questionID string) error
}

type questionStore interface {
	Put(ctx context.Context, q *domain.Question) error
	Get(ctx context.Context, questionID string) (*domain.Question, error)
	Scan(ctx context.Context) ([]domain.Question, error)
	Delete(ctx context.Context, questionID string) error
}

type answerStore interface {
	Put(ctx context.Context, a *domain.Answer) error
	ListByQuestion(ctx context.Context, questionID string) ([]domain.Answer, error)
	Delete(ctx context.Context, answerID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	questions questionStore
	answers   answerStore
	users     userStore
}

func NewService(questions questionStore, answers answerStore, users userStore) Service {
	return &service{questions: questions, answers: answers, users: users}
}

func (s *service) Ask(ctx context.Context, authorID string, req domain.AskQuestionRequest) (*domain.Question, error) {
	if len(req.Tags) > maxTags {
		return nil, fmt.Errorf("a question cannot have more than %d tags: %w", maxTags, domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	q := &domain.Question{
		QuestionID:  id.New(),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		AuthorID:    authorID,
		Voters:      []domain.Voter{},
		AnswerIDs:   []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.questions.Put(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) List(ctx context.Context, viewerID string) ([]domain.QuestionView, error) {
	questions, err := s.questions.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})
	names := newNameCache(s.users)
	views := make([]domain.QuestionView, 0, len(questions))
	for i := range questions {
		view, err := s.resolve(ctx, &questions[i], viewerID, names)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, questionID string) (*domain.QuestionView, error) {
	q, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, q, "", newNameCache(s.users))
}

func (s *service) AddAnswer(ctx context.Context, questionID, authorID, text string) (*domain.AnswerView, error) {
	q, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return nil, err
	}
	a := &domain.Answer{
		AnswerID:   id.New(),
		Text:       text,
		AuthorID:   authorID,
		QuestionID: q.QuestionID,
		Likes:      []string{},
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.answers.Put(ctx, a); err != nil {
		return nil, err
	}
	q.AnswerIDs = append(q.AnswerIDs, a.AnswerID)
	q.UpdatedAt = time.Now().UTC()
	if err := s.questions.Put(ctx, q); err != nil {
		return nil, err
	}
	name := newNameCache(s.users).get(ctx, authorID)
	return &domain.AnswerView{Answer: *a, AuthorName: name}, nil
}

func (s *service) Vote(ctx context.Context, questionID, userID string, direction int) (*domain.QuestionView, error) {
	if direction != domain.VoteUp && direction != domain.VoteDown {
		return nil, fmt.Errorf("invalid vote type: %w", domain.ErrBadRequest)
	}
	q, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return nil, err
	}
	newVote := applyVote(q, userID, direction)
	q.UpdatedAt = time.Now().UTC()
	if err := s.questions.Put(ctx, q); err != nil {
		return nil, err
	}
	view, err := s.resolve(ctx, q, "", newNameCache(s.users))
	if err != nil {
		return nil, err
	}
	view.UserVote = newVote
	return view, nil
}

func (s *service) Delete(ctx context.Context, questionID string) error {
	q, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return err
	}
	answers, err := s.answers.ListByQuestion(ctx, q.QuestionID)
	if err != nil {
		return err
	}
	for _, a := range answers {
		if err := s.answers.Delete(ctx, a.AnswerID); err != nil {
			return err
		}
	}
	return s.questions.Delete(ctx, q.QuestionID)
}

// applyVote toggles userID's vote on q toward direction and returns the
// user's resulting vote state. Any existing entry is removed and its tally
// decremented first; repeating the same direction is a toggle-off, otherwise
// a fresh entry is added and the matching tally incremented. The question is
// mutated in place but not persisted here.
func applyVote(q *domain.Question, userID string, direction int) int {
	old := q.VoteBy(userID)

	if old != domain.VoteNone {
		voters := make([]domain.Voter, 0, len(q.Voters))
		for _, v := range q.Voters {
			if v.UserID != userID {
				voters = append(voters, v)
			}
		}
		q.Voters = voters
		if old == domain.VoteUp {
			q.Upvotes--
		} else {
			q.Downvotes--
		}
	}

	if direction == old {
		return domain.VoteNone
	}

	if direction == domain.VoteUp {
		q.Upvotes++
	} else {
		q.Downvotes++
	}
	q.Voters = append(q.Voters, domain.Voter{UserID: userID, Vote: direction})
	return direction
}

// resolve expands a question for display: author names attached, answers
// loaded oldest-first, and the viewer's vote state filled in.
func (s *service) resolve(ctx context.Context, q *domain.Question, viewerID string, names *nameCache) (*domain.QuestionView, error) {
	authorName := names.get(ctx, q.AuthorID)
	answers, err := s.answers.ListByQuestion(ctx, q.QuestionID)
	if err != nil {
		return nil, err
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].CreatedAt.Before(answers[j].CreatedAt)
	})
	comments := make([]domain.AnswerView, 0, len(answers))
	for _, a := range answers {
		comments = append(comments, domain.AnswerView{
			Answer:     a,
			AuthorName: names.get(ctx, a.AuthorID),
			LikeCount:  len(a.Likes),
		})
	}
	view := &domain.QuestionView{
		Question:     *q,
		AuthorName:   authorName,
		Comments:     comments,
		CommentCount: len(comments),
	}
	if viewerID != "" {
		view.UserVote = q.VoteBy(viewerID)
	}
	return view, nil
}

// nameCache memoises user-name lookups within a single resolution pass so
// listing N questions by the same author costs one Get.
type nameCache struct {
	users userStore
	byID  map[string]string
}

func newNameCache(users userStore) *nameCache {
	return &nameCache{users: users, byID: make(map[string]string)}
}

func (c *nameCache) get(ctx context.Context, userID string) string {
	if name, ok := c.byID[userID]; ok {
		return name
	}
	name := ""
	// A missing author must not break listing; the name just stays empty.
	if u, err := c.users.Get(ctx, userID); err == nil {
		name = u.Name
	}
	c.byID[userID] = name
	return name
}
