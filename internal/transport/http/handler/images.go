package handler

import (
	"net/http"

	"github.com/debugden/api/internal/application/image"
	"github.com/debugden/api/internal/transport/http/middleware"
)

// maxImageSize caps multipart image uploads at 10 MiB.
const maxImageSize = 10 << 20

// ImageHandler handles question image uploads.
type ImageHandler struct {
	svc image.Service
}

func NewImageHandler(svc image.Service) *ImageHandler { return &ImageHandler{svc: svc} }

// Upload accepts a multipart form with an "image" field, stores the file and
// returns its public URL for embedding in a question.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	img, err := h.svc.Upload(r.Context(), image.UploadInput{
		Reader:      file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		UploaderID:  claims.UserID,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ImageURL string `json:"image_url"`
	}{img.URL})
}
