package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/opsdesk/opsdesk/internal/config"
	"github.com/opsdesk/opsdesk/pkg/user"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the bearer token into a user and put it on the context.
	// Requests without a token pass through; handlers that need a session
	// answer 401 themselves.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			token := bearerToken(req)
			if token != "" {
				uid, err := deps.Tokens.Validate(token)
				if err != nil {
					log.Debugf("rejected session token: %v", err)
					http.Error(w, "invalid session token", http.StatusUnauthorized)
					return
				}

				u, err := deps.UserService.GetUserByUid(ctx, uid)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("user not found for token subject: %s", uid)
						http.Error(w, "user not found", http.StatusForbidden)
						return
					}
					log.Errorf("failed to get user: %v", err)
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

func bearerToken(req *http.Request) string {
	header := req.Header.Get("Authorization")
	if after, found := strings.CutPrefix(header, "Bearer "); found {
		return after
	}
	return ""
}
