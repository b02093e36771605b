package jwt

import (
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the identity provider. Issuing is
// only used by the seed command and tests.
type Service interface {
	GenerateAccessToken(actor auth.Actor) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenTTL time.Duration
	tokenAuth      *jwtauth.JWTAuth
	now            func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenTTL time.Duration) Service {
	return &JWTService{
		accessTokenTTL: accessTokenTTL,
		tokenAuth:      jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:            time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(actor auth.Actor) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenTTL).Unix()

	claims := Claims(actor)
	claims["exp"] = expiresAt

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// Claims is the access-token claim set auth.ActorFromContext reads back.
func Claims(actor auth.Actor) map[string]interface{} {
	return map[string]interface{}{
		"user_id":     actor.UserID,
		"employee_id": actor.EmployeeID,
		"name":        actor.Name,
		"role":        string(actor.Role),
		"department":  actor.Department,
		"type":        "access",
	}
}
