package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	authdomain "virtualboard/authapi/internal/domain/auth"
)

const maxBodyBytes = 1 << 20

// authenticatedHandler receives the claims resolved from the request's bearer token.
type authenticatedHandler func(w http.ResponseWriter, r *http.Request, claims authdomain.Claims)

func (s *Server) registerRoutes() {
	s.router.HandleFunc("GET /{$}", s.handleRoot)
	s.router.HandleFunc("POST /register", s.handleRegister)
	s.router.HandleFunc("POST /login", s.handleLogin)
	s.router.HandleFunc("GET /boards", s.requireToken(s.handleBoards))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Virtual Board Auth API is running"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := s.authService.Register(r.Context(), creds)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrMissingCredentials),
			errors.Is(err, authdomain.ErrPasswordTooLong):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, authdomain.ErrUsernameTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			s.internalError(w, r, "registration failed", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Message:  "user created",
		UserID:   user.ID,
		Username: user.Username,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, user, err := s.authService.Login(r.Context(), creds)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, authdomain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, err.Error())
		default:
			s.internalError(w, r, "login failed", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "login successful",
		Token:   token,
		User:    userSummary{ID: user.ID, Username: user.Username},
	})
}

func (s *Server) handleBoards(w http.ResponseWriter, r *http.Request, claims authdomain.Claims) {
	boards := claims.Boards
	if boards == nil {
		boards = []string{}
	}
	writeJSON(w, http.StatusOK, boardsResponse{
		UserID:   claims.UserID,
		Username: claims.Username,
		Boards:   boards,
	})
}

// requireToken rejects requests without a valid bearer token: 401 when the
// token is missing, 403 when it fails verification.
func (s *Server) requireToken(next authenticatedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.authService.Authorize(r.Header.Get("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, authdomain.ErrTokenMissing):
				writeError(w, http.StatusUnauthorized, err.Error())
			case errors.Is(err, authdomain.ErrTokenInvalid):
				writeError(w, http.StatusForbidden, err.Error())
			default:
				s.internalError(w, r, "authorization failed", err)
			}
			return
		}
		next(w, r, claims)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(r.Context(), msg,
		"request_id", requestIDFrom(r.Context()),
		"path", r.URL.Path,
		"err", err,
	)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// decodeCredentials reads a {username, password} body. An empty body decodes
// to empty credentials so validation reports the missing fields.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (authdomain.Credentials, bool) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return authdomain.Credentials{}, false
	}
	return authdomain.Credentials{Username: payload.Username, Password: payload.Password}, true
}
