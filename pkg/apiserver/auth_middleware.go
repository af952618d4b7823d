package apiserver

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/trackmaster/trackmaster/pkg/apierrors"
	"github.com/trackmaster/trackmaster/pkg/auth"
	"github.com/trackmaster/trackmaster/pkg/backend"
)

const authFailed = "Authentication failed!"

// tokenAuth requires a valid bearer token and puts the caller's identity in
// the request context.
func tokenAuth(b backend.Backend) step {
	return func(r *http.Request) (*http.Request, error) {
		logrus.Debugf("authenticating request URL path: %s", r.URL.Path)
		authorization := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
		if authorization == "" || token == "" || token == authorization {
			return nil, apierrors.Unauthorized(authFailed)
		}

		id, err := b.Authenticate(token)
		if err != nil {
			return nil, err
		}

		return r.WithContext(auth.WithIdentity(r.Context(), id)), nil
	}
}

func identityFromRequest(r *http.Request) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return auth.Identity{}, apierrors.Unauthorized(authFailed)
	}
	return id, nil
}
