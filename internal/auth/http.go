package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
)

// Handler serves the account endpoints under /api/auth/.
type Handler struct {
	service *Service
}

// NewHandler constructs a handler.
func NewHandler(service *Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("auth handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes /api/auth/register/, /api/auth/login/ and
// /api/auth/csrf/.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/auth/register/", "/api/auth/register":
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.handleRegister(w, r)
	case "/api/auth/login/", "/api/auth/login":
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.handleLogin(w, r)
	case "/api/auth/csrf/", "/api/auth/csrf":
		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.handleCSRF(w, r)
	default:
		writeJSONError(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	token, err := h.service.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		respondAuthError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message":  "User created successfully",
		"username": req.Username,
		"token":    token,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondAuthError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message":  "Login successful",
		"username": req.Username,
		"token":    token,
	})
}

// handleCSRF issues a random token cookie. The API itself is
// bearer-authenticated; this endpoint exists for clients that probe it
// before registering or logging in.
func (h *Handler) handleCSRF(w http.ResponseWriter, r *http.Request) {
	_ = r
	token := newCSRFToken()
	http.SetCookie(w, &http.Cookie{
		Name:     "csrftoken",
		Value:    token,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"csrfToken": token})
}

func newCSRFToken() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyCredentials):
		writeJSONError(w, http.StatusBadRequest, "Username and password are required")
	case errors.Is(err, ErrUsernameTaken):
		writeJSONError(w, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
