// Package httpapi exposes the form-encoded authentication endpoints. The
// handlers are thin: decode the form, call the user service, map sentinel
// errors to status codes. The token is returned as the raw response body.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/matchroom/internal/common"
	"github.com/dmitrijs2005/matchroom/internal/logging"
	"github.com/dmitrijs2005/matchroom/internal/server/users"
)

type Handler struct {
	users  *users.Service
	logger logging.Logger
}

func NewHandler(us *users.Service, l logging.Logger) *Handler {
	return &Handler{users: us, logger: l.With("module", "httpapi")}
}

// Register mounts the auth endpoints on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/signup", h.signup)
	mux.HandleFunc("POST /api/login", h.login)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {

	username, pw, ok := formCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.users.Register(r.Context(), username, pw)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			http.Error(w, "invalid username or password format", http.StatusBadRequest)
		case errors.Is(err, common.ErrorAlreadyExists):
			http.Error(w, "username already taken", http.StatusConflict)
		default:
			h.logger.Error(r.Context(), "signup failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info(r.Context(), "user registered", "username", username)
	writeToken(w, token)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {

	username, pw, ok := formCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.users.Login(r.Context(), username, pw)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		h.logger.Error(r.Context(), "login failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeToken(w, token)
}

func formCredentials(w http.ResponseWriter, r *http.Request) (username, pw string, ok bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return "", "", false
	}
	return r.PostFormValue("username"), r.PostFormValue("password"), true
}

func writeToken(w http.ResponseWriter, token string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(token))
}
