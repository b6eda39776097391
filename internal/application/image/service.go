package image

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/debugden/api/internal/domain"
	"github.com/debugden/api/internal/pkg/id"
)

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	UploaderID  string
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*domain.Image, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type imageStore interface {
	Put(ctx context.Context, img *domain.Image) error
}

type service struct {
	objects objectStore
	images  imageStore
}

func NewService(objects objectStore, images imageStore) Service {
	return &service{objects: objects, images: images}
}

// Upload streams a question image to object storage and records it.
// The returned Image carries the public URL the client embeds in a question.
func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.Image, error) {
	safeName := sanitizeFilename(input.Filename)
	imageID := id.New()
	key := fmt.Sprintf("questions/%s/%s-%s", input.UploaderID, imageID, safeName)
	url, err := s.objects.Upload(ctx, key, input.Reader, input.ContentType)
	if err != nil {
		return nil, err
	}
	img := &domain.Image{
		ImageID:    imageID,
		Object:     key,
		URL:        url,
		Name:       safeName,
		Size:       input.Size,
		Type:       input.ContentType,
		UploaderID: input.UploaderID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.images.Put(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// sanitizeFilename strips any path components and characters unsafe for an
// object key.
func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
