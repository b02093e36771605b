package fixtures

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

var testTokenAuth = jwtauth.New("HS256", []byte("fixtures-secret"), nil)

// ContextAs returns ctx carrying a verified access token for actor, the way
// the jwtauth verifier middleware leaves it for handlers.
func ContextAs(ctx context.Context, actor auth.Actor) (context.Context, error) {
	token, _, err := testTokenAuth.Encode(jwt.Claims(actor))
	if err != nil {
		return nil, fmt.Errorf("failed to encode token: %w", err)
	}
	return jwtauth.NewContext(ctx, token, nil), nil
}
