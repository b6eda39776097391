package user

import (
	"context"
	"testing"

	"github.com/debugden/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

func strPtr(s string) *string { return &s }

func TestUpdate_EmptyRequestIsANoOp(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Ada"}, nil)

	svc := NewService(repo)
	u, err := svc.Update(context.Background(), "u1", domain.UpdateProfileRequest{})

	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_BlankNameIgnored(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Ada"}, nil)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "u1", domain.UpdateProfileRequest{Name: strPtr("")})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_NameChangePersisted(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Update", mock.Anything, "u1", map[string]interface{}{"name": "Ada L"}).Return(nil)
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Ada L"}, nil)

	svc := NewService(repo)
	u, err := svc.Update(context.Background(), "u1", domain.UpdateProfileRequest{Name: strPtr("Ada L")})

	require.NoError(t, err)
	assert.Equal(t, "Ada L", u.Name)
	repo.AssertExpectations(t)
}
