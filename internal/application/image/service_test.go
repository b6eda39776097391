package image

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/debugden/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) Put(ctx context.Context, img *domain.Image) error {
	return m.Called(ctx, img).Error(0)
}

func TestUpload_HappyPath(t *testing.T) {
	objects := &mockObjectStore{}
	images := &mockImageStore{}
	objects.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "questions/u1/") && strings.HasSuffix(key, "-trace.png")
	}), mock.Anything, "image/png").Return("https://cdn.example.com/trace.png", nil)
	images.On("Put", mock.Anything, mock.AnythingOfType("*domain.Image")).Return(nil)

	svc := NewService(objects, images)
	img, err := svc.Upload(context.Background(), UploadInput{
		Reader:      strings.NewReader("png-bytes"),
		Filename:    "trace.png",
		ContentType: "image/png",
		Size:        9,
		UploaderID:  "u1",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/trace.png", img.URL)
	assert.Equal(t, "u1", img.UploaderID)
	objects.AssertExpectations(t)
	images.AssertExpectations(t)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"trace.png":            "trace.png",
		"../../etc/passwd":     "passwd",
		"my photo (1).png":     "my_photo__1_.png",
		"c:\\temp\\shot.jpg":   "shot.jpg",
		"::":                   "__",
		"snake_case-name.jpeg": "snake_case-name.jpeg",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeFilename(in), "input %q", in)
	}
}
