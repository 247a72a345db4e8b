package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffdesk/ems-backend-go/internal/domain/user"
)

// actorFromRequest resolves the caller identity from the verified JWT claims.
func actorFromRequest(r *http.Request) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Actor{}, user.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, user.ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return user.Actor{}, user.ErrInvalidToken
	}
	name, _ := claims["name"].(string)

	return user.Actor{
		ID:   userID,
		Name: name,
		Role: user.Role(role),
	}, nil
}
