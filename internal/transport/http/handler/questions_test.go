package handler

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/debugden/api/internal/config"
	"github.com/debugden/api/internal/domain"
	jwtinfra "github.com/debugden/api/internal/infrastructure/jwt"
	"github.com/debugden/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockQuestionSvc struct{ mock.Mock }

func (m *mockQuestionSvc) Ask(ctx context.Context, authorID string, req domain.AskQuestionRequest) (*domain.Question, error) {
	args := m.Called(ctx, authorID, req)
	if q, _ := args.Get(0).(*domain.Question); q != nil {
		return q, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockQuestionSvc) List(ctx context.Context, viewerID string) ([]domain.QuestionView, error) {
	args := m.Called(ctx, viewerID)
	return args.Get(0).([]domain.QuestionView), args.Error(1)
}
func (m *mockQuestionSvc) Get(ctx context.Context, questionID string) (*domain.QuestionView, error) {
	args := m.Called(ctx, questionID)
	if v, _ := args.Get(0).(*domain.QuestionView); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockQuestionSvc) AddAnswer(ctx context.Context, questionID, authorID, text string) (*domain.AnswerView, error) {
	args := m.Called(ctx, questionID, authorID, text)
	if v, _ := args.Get(0).(*domain.AnswerView); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockQuestionSvc) Vote(ctx context.Context, questionID, userID string, direction int) (*domain.QuestionView, error) {
	args := m.Called(ctx, questionID, userID, direction)
	if v, _ := args.Get(0).(*domain.QuestionView); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockQuestionSvc) Delete(ctx context.Context, questionID string) error {
	return m.Called(ctx, questionID).Error(0)
}

// --- helpers ---

// newTestJWTProvider generates a fresh RSA key pair and returns a *jwtinfra.Provider.
func newTestJWTProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))

	p, err := jwtinfra.NewProvider(&config.Config{
		JWTPrivateKeyPath: privPath,
		JWTPublicKeyPath:  pubPath,
		JWTExpiry:         24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

// bearerReq builds a request with a signed Bearer token for the given userID and role.
func bearerReq(t *testing.T, p *jwtinfra.Provider, method, target, userID, role string, body []byte) *http.Request {
	t.Helper()
	token, err := p.Sign(userID, role)
	require.NoError(t, err)
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

// withChiID injects a chi URL param "id" into the request context.
func withChiID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// serveAuthed wraps the handler with middleware.Auth before serving.
func serveAuthed(p *jwtinfra.Provider, h http.Handler, w http.ResponseWriter, r *http.Request) {
	middleware.Auth(p)(h).ServeHTTP(w, r)
}

// --- Ask ---

func TestAsk_MissingClaims(t *testing.T) {
	h := NewQuestionHandler(&mockQuestionSvc{})
	r := httptest.NewRequest(http.MethodPost, "/v1/questions/ask", nil)
	rr := httptest.NewRecorder()
	h.Ask(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAsk_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockQuestionSvc{}
	q := &domain.Question{QuestionID: "q1", Title: "panic in goroutine", AuthorID: "u1"}
	svc.On("Ask", mock.Anything, "u1", mock.Anything).Return(q, nil)
	h := NewQuestionHandler(svc)
	body, _ := json.Marshal(domain.AskQuestionRequest{
		Title:       "panic in goroutine",
		Description: "stack trace attached",
		Tags:        []string{"go"},
	})

	r := bearerReq(t, p, http.MethodPost, "/v1/questions/ask", "u1", domain.RoleUser, body)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Ask), rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	svc.AssertExpectations(t)
}

// --- Get ---

func TestGet_NotFound(t *testing.T) {
	svc := &mockQuestionSvc{}
	svc.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
	h := NewQuestionHandler(svc)

	r := withChiID(httptest.NewRequest(http.MethodGet, "/v1/questions/missing", nil), "missing")
	rr := httptest.NewRecorder()
	h.Get(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGet_AnonymousAccessAllowed(t *testing.T) {
	svc := &mockQuestionSvc{}
	view := &domain.QuestionView{Question: domain.Question{QuestionID: "q1"}, AuthorName: "Ada"}
	svc.On("Get", mock.Anything, "q1").Return(view, nil)
	h := NewQuestionHandler(svc)

	r := withChiID(httptest.NewRequest(http.MethodGet, "/v1/questions/q1", nil), "q1")
	rr := httptest.NewRecorder()
	h.Get(rr, r) // no auth middleware, no claims

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

// --- Vote ---

func TestVote_MapsDownvoteDirection(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockQuestionSvc{}
	view := &domain.QuestionView{Question: domain.Question{QuestionID: "q1", Downvotes: 1}, UserVote: domain.VoteDown}
	svc.On("Vote", mock.Anything, "q1", "u1", domain.VoteDown).Return(view, nil)
	h := NewQuestionHandler(svc)
	body, _ := json.Marshal(domain.VoteRequest{Type: "downvote"})

	r := bearerReq(t, p, http.MethodPut, "/v1/questions/q1/vote", "u1", domain.RoleUser, body)
	r = withChiID(r, "q1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Vote), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestVote_RejectsUnknownType(t *testing.T) {
	p := newTestJWTProvider(t)
	h := NewQuestionHandler(&mockQuestionSvc{})
	body, _ := json.Marshal(domain.VoteRequest{Type: "sideways"})

	r := bearerReq(t, p, http.MethodPut, "/v1/questions/q1/vote", "u1", domain.RoleUser, body)
	r = withChiID(r, "q1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Vote), rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- AddComment ---

func TestAddComment_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockQuestionSvc{}
	view := &domain.AnswerView{Answer: domain.Answer{AnswerID: "a1", Text: "try recover()"}, AuthorName: "Ada"}
	svc.On("AddAnswer", mock.Anything, "q1", "u1", "try recover()").Return(view, nil)
	h := NewQuestionHandler(svc)
	body, _ := json.Marshal(domain.AddAnswerRequest{Text: "try recover()"})

	r := bearerReq(t, p, http.MethodPost, "/v1/questions/q1/comments", "u1", domain.RoleUser, body)
	r = withChiID(r, "q1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.AddComment), rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	svc.AssertExpectations(t)
}

// --- Delete ---

func TestDelete_AdminRouteRequiresRole(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockQuestionSvc{}
	h := NewQuestionHandler(svc)

	guarded := middleware.RequireRole(domain.RoleAdmin)(http.HandlerFunc(h.Delete))

	r := bearerReq(t, p, http.MethodDelete, "/v1/questions/q1", "u1", domain.RoleUser, nil)
	r = withChiID(r, "q1")
	rr := httptest.NewRecorder()
	serveAuthed(p, guarded, rr, r)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	svc.On("Delete", mock.Anything, "q1").Return(nil)
	r = bearerReq(t, p, http.MethodDelete, "/v1/questions/q1", "admin1", domain.RoleAdmin, nil)
	r = withChiID(r, "q1")
	rr = httptest.NewRecorder()
	serveAuthed(p, guarded, rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
