package handler

import (
	"net/http"
	"time"

	"github.com/fieldlog/fieldlog/internal/domain"
)

// userResponse is the API representation of a user.
// The password hash is deliberately absent — it never leaves the server.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// userWithTripsResponse embeds the user's trips on single-user reads.
type userWithTripsResponse struct {
	userResponse
	Trips []tripResponse `json:"trips"`
}

type createUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type updateUserRequest struct {
	Name     *string      `json:"name"`
	Email    *string      `json:"email"`
	Password *string      `json:"password"`
	Role     *domain.Role `json:"role"`
}

// ListUsers handles GET /users. Admin-only.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	users, err := s.users.List(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, "User not found")
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = userToResponse(u)
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetUser handles GET /users/{id}. Self or admin; the response embeds the
// user's trips.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	user, trips, err := s.users.Get(r.Context(), req, id)
	if err != nil {
		respondServiceError(w, r, err, "User not found")
		return
	}

	resp := userWithTripsResponse{userResponse: userToResponse(user), Trips: make([]tripResponse, len(trips))}
	for i, t := range trips {
		resp.Trips[i] = tripToResponse(t)
	}
	respondJSON(w, http.StatusOK, resp)
}

// CreateUser handles POST /users (admin-style create; password optional).
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var body createUserRequest
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Create(r.Context(), req, body.Name, body.Email, body.Password, body.Role)
	if err != nil {
		respondServiceError(w, r, err, "User not found")
		return
	}

	respondJSON(w, http.StatusCreated, userToResponse(user))
}

// UpdateUser handles PUT /users/{id}. Self or admin; role changes admin-only.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	var body updateUserRequest
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Update(r.Context(), req, id, domain.UserUpdate{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		respondServiceError(w, r, err, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, userToResponse(user))
}

// DeleteUser handles DELETE /users/{id}. Admin-only; cascades to the user's
// trips and species records.
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := s.users.Delete(r.Context(), req, id); err != nil {
		respondServiceError(w, r, err, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// userToResponse converts a domain.User into its API representation.
func userToResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
