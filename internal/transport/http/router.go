package http

import (
	"net/http"

	"github.com/debugden/api/internal/application/answer"
	"github.com/debugden/api/internal/application/auth"
	imageapp "github.com/debugden/api/internal/application/image"
	"github.com/debugden/api/internal/application/question"
	"github.com/debugden/api/internal/application/user"
	"github.com/debugden/api/internal/config"
	"github.com/debugden/api/internal/domain"
	"github.com/debugden/api/internal/transport/http/handler"
	appmiddleware "github.com/debugden/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to the public auth endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:    deps.UserRepo,
		OTPRepo:     deps.VerificationRepo,
		Mailer:      deps.Mailer,
		JWTProvider: deps.JWTProvider,
		OTPTTL:      cfg.OTPTTL,
	})
	questionSvc := question.NewService(deps.QuestionRepo, deps.AnswerRepo, deps.UserRepo)
	answerSvc := answer.NewService(deps.AnswerRepo, deps.UserRepo)
	userSvc := user.NewService(deps.UserRepo)
	imageSvc := imageapp.NewService(deps.S3Store, deps.ImageRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	questionH := handler.NewQuestionHandler(questionSvc)
	answerH := handler.NewAnswerHandler(answerSvc)
	userH := handler.NewUserHandler(userSvc)
	imageH := handler.NewImageHandler(imageSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/send-otp", authH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/auth/request-password-reset", authH.RequestPasswordReset)
		r.With(sensitiveRL.Limit).Post("/auth/reset-password", authH.ResetPassword)

		// Anonymous single-question fetch, so shared links work logged-out.
		r.Get("/questions/{id}", questionH.Get)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/questions", questionH.List)
			r.Post("/questions/ask", questionH.Ask)
			r.Post("/questions/{id}/comments", questionH.AddComment)
			r.Put("/questions/{id}/vote", questionH.Vote)
			r.Put("/answers/{id}/like", answerH.ToggleLike)
			r.Get("/users/me", userH.GetMe)
			r.Put("/users/me", userH.UpdateMe)
			r.Post("/upload", imageH.Upload)

			// Admin-only moderation
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Delete("/questions/{id}", questionH.Delete)
			})
		})
	})

	return r
}
