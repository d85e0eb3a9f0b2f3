package api

import (
	"context"
	"net/http"
	"strings"

	"driveshare/pkg/apperr"
	"driveshare/pkg/models"
)

type contextKey string

const principalIDKey contextKey = "principal_id"

// requireAuth parses the bearer token, verifies it was issued for the given
// principal kind and puts the principal id on the request context.
func (s *Server) requireAuth(kind models.PrincipalKind, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			s.writeError(w, apperr.New(apperr.KindAuth, "missing bearer token"))
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		principalID, err := s.tokens.Verify(tokenString, kind)
		if err != nil {
			s.writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalIDKey, principalID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func principalID(ctx context.Context) int64 {
	id, _ := ctx.Value(principalIDKey).(int64)
	return id
}
