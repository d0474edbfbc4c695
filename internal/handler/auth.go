package handler

import (
	"net/http"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /auth/register. Always unauthenticated, always the
// default role — there is no way to register an admin.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.auth.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		respondServiceError(w, r, err, "User not found")
		return
	}

	respondJSON(w, http.StatusCreated, userToResponse(user))
}

// Login handles POST /auth/login. Bad credentials — unknown email or wrong
// password alike — come back as 401 with one indistinguishable message.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Email == "" || body.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	tok, err := s.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		respondServiceError(w, r, err, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": tok})
}

// Logout handles POST /auth/logout. Tokens are stateless, so there is nothing
// to revoke server-side: the client discards the token and it expires on its
// own. The endpoint still requires a valid token so a dead session gets 401.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := requester(r); !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
