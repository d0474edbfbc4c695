package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fieldlog/fieldlog/internal/domain"
)

// speciesResponse is the API representation of a species record.
type speciesResponse struct {
	ID          string    `json:"id"`
	TripID      string    `json:"tripId"`
	SpeciesName string    `json:"speciesName"`
	Quantity    int       `json:"quantity"`
	Measurement string    `json:"measurement,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type createSpeciesRequest struct {
	SpeciesName string `json:"speciesName"`
	Quantity    int    `json:"quantity"`
	Measurement string `json:"measurement"`
	Notes       string `json:"notes"`
	TripID      string `json:"tripId"`
}

type updateSpeciesRequest struct {
	SpeciesName *string `json:"speciesName"`
	Quantity    *int    `json:"quantity"`
	Measurement *string `json:"measurement"`
	Notes       *string `json:"notes"`
}

// CreateSpecies handles POST /species. The parent trip must exist (400
// otherwise) and must be writable by the requester (owner or admin).
func (s *Server) CreateSpecies(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var body createSpeciesRequest
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.SpeciesName == "" || body.TripID == "" {
		respondError(w, http.StatusBadRequest, "speciesName and tripId required")
		return
	}
	tripID, err := uuid.Parse(body.TripID)
	if err != nil {
		// An unparsable reference and a nonexistent one look the same to the
		// caller: bad input.
		respondError(w, http.StatusBadRequest, "tripId not found")
		return
	}

	sp, err := s.species.Create(r.Context(), req, domain.Species{
		TripID:      tripID,
		Name:        body.SpeciesName,
		Quantity:    body.Quantity,
		Measurement: body.Measurement,
		Notes:       body.Notes,
	})
	if err != nil {
		respondServiceError(w, r, err, "Record not found")
		return
	}

	respondJSON(w, http.StatusCreated, speciesToResponse(sp))
}

// ListSpecies handles GET /species. Scoped through the joined trip's owner.
func (s *Server) ListSpecies(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := s.species.List(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, "Record not found")
		return
	}

	respondJSON(w, http.StatusOK, speciesListToResponse(records))
}

// SearchSpecies handles GET /species/search?name=. Case-insensitive substring
// match, AND'd with the requester's scope.
func (s *Server) SearchSpecies(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := s.species.Search(r.Context(), req, r.URL.Query().Get("name"))
	if err != nil {
		respondServiceError(w, r, err, "Record not found")
		return
	}

	respondJSON(w, http.StatusOK, speciesListToResponse(records))
}

// GetSpecies handles GET /species/{id}. Owner or admin via the trip chain.
func (s *Server) GetSpecies(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	sp, err := s.species.Get(r.Context(), req, id)
	if err != nil {
		respondServiceError(w, r, err, "Record not found")
		return
	}

	respondJSON(w, http.StatusOK, speciesToResponse(sp))
}

// UpdateSpecies handles PUT /species/{id}. Owner or admin via the trip chain.
func (s *Server) UpdateSpecies(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}
	var body updateSpeciesRequest
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sp, err := s.species.Update(r.Context(), req, id, domain.SpeciesUpdate{
		Name:        body.SpeciesName,
		Quantity:    body.Quantity,
		Measurement: body.Measurement,
		Notes:       body.Notes,
	})
	if err != nil {
		respondServiceError(w, r, err, "Record not found")
		return
	}

	respondJSON(w, http.StatusOK, speciesToResponse(sp))
}

// DeleteSpecies handles DELETE /species/{id}. Owner or admin via the trip chain.
func (s *Server) DeleteSpecies(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	if err := s.species.Delete(r.Context(), req, id); err != nil {
		respondServiceError(w, r, err, "Record not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Record deleted"})
}

// speciesToResponse converts a domain.Species into its API representation.
func speciesToResponse(sp domain.Species) speciesResponse {
	return speciesResponse{
		ID:          sp.ID.String(),
		TripID:      sp.TripID.String(),
		SpeciesName: sp.Name,
		Quantity:    sp.Quantity,
		Measurement: sp.Measurement,
		Notes:       sp.Notes,
		CreatedAt:   sp.CreatedAt,
		UpdatedAt:   sp.UpdatedAt,
	}
}

func speciesListToResponse(records []domain.Species) []speciesResponse {
	resp := make([]speciesResponse, len(records))
	for i, sp := range records {
		resp[i] = speciesToResponse(sp)
	}
	return resp
}
