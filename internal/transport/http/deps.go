package http

import (
	"github.com/debugden/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/debugden/api/internal/infrastructure/jwt"
	s3infra "github.com/debugden/api/internal/infrastructure/s3"
	"github.com/debugden/api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	QuestionRepo     *dynamo.QuestionRepo
	AnswerRepo       *dynamo.AnswerRepo
	VerificationRepo *dynamo.VerificationRepo
	ImageRepo        *dynamo.ImageRepo
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	JWTProvider      *jwtinfra.Provider
}
