package auth

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
)

// ActorFromContext reads the verified access token placed in ctx by the
// jwtauth verifier.
func ActorFromContext(ctx context.Context) (Actor, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return Actor{}, ErrUnauthorized
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return Actor{}, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return Actor{}, ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	if !Role(role).Valid() {
		return Actor{}, ErrInvalidRole
	}

	actor := Actor{
		UserID: userID,
		Role:   Role(role),
	}
	actor.EmployeeID, _ = claims["employee_id"].(string)
	actor.Name, _ = claims["name"].(string)
	actor.Department, _ = claims["department"].(string)

	return actor, nil
}
