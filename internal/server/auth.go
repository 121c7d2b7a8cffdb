package server

import (
	"errors"
	"net/http"

	"github.com/iwvelando/lifepath/internal/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errUnauthorized = errors.New("invalid username or password")

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// authenticate resolves the HTTP Basic credentials to a stored user.
func (h *handler) authenticate(r *http.Request) (*store.User, error) {
	username, password, ok := r.BasicAuth()
	if !ok || username == "" {
		return nil, errUnauthorized
	}

	user, err := h.store.GetUserByUsername(r.Context(), username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errUnauthorized
	}
	return user, nil
}

// requireUser writes the error response itself and returns false when the
// request is not authenticated.
func (h *handler) requireUser(w http.ResponseWriter, r *http.Request, op string) (*store.User, bool) {
	user, err := h.authenticate(r)
	if errors.Is(err, errUnauthorized) {
		h.logger.Debug("rejected credentials",
			zap.String("op", op),
			zap.String("remote", r.RemoteAddr),
		)
		w.Header().Set("WWW-Authenticate", `Basic realm="lifepath"`)
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return nil, false
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, "failed to load user", op)
		return nil, false
	}
	return user, true
}
