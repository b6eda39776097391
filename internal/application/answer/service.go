package answer

import (
	"context"

	"github.com/debugden/api/internal/domain"
)

type Service interface {
	ToggleLike(ctx context.Context, answerID, userID string) (*domain.AnswerView, error)
}

type answerStore interface {
	Get(ctx context.Context, answerID string) (*domain.Answer, error)
	Put(ctx context.Context, a *domain.Answer) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	answers answerStore
	users   userStore
}

func NewService(answers answerStore, users userStore) Service {
	return &service{answers: answers, users: users}
}

// ToggleLike flips userID's like on the answer: present entries are removed,
// absent ones appended. One persisted write per call, so calling twice
// restores the original like list.
func (s *service) ToggleLike(ctx context.Context, answerID, userID string) (*domain.AnswerView, error) {
	a, err := s.answers.Get(ctx, answerID)
	if err != nil {
		return nil, err
	}
	toggleLike(a, userID)
	if err := s.answers.Put(ctx, a); err != nil {
		return nil, err
	}
	view := &domain.AnswerView{Answer: *a, LikeCount: len(a.Likes)}
	if u, err := s.users.Get(ctx, a.AuthorID); err == nil {
		view.AuthorName = u.Name
	}
	return view, nil
}

func toggleLike(a *domain.Answer, userID string) {
	for i, id := range a.Likes {
		if id == userID {
			a.Likes = append(a.Likes[:i], a.Likes[i+1:]...)
			return
		}
	}
	a.Likes = append(a.Likes, userID)
}
