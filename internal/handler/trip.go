package handler

import (
	"net/http"
	"time"

	"github.com/fieldlog/fieldlog/internal/domain"
)

// tripResponse is the API representation of a trip. Optional free-text
// fields are omitted when empty rather than sent as empty strings.
type tripResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Location  string    `json:"location"`
	Type      string    `json:"type"`
	Weather   string    `json:"weather,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Gear      string    `json:"gear,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// tripFullResponse embeds the trip's species records on GET /trips/{id}/full.
type tripFullResponse struct {
	tripResponse
	Species []speciesResponse `json:"species"`
}

type createTripRequest struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	Type     string `json:"type"`
	Weather  string `json:"weather"`
	Notes    string `json:"notes"`
	Gear     string `json:"gear"`
}

type updateTripRequest struct {
	Date     *string `json:"date"`
	Location *string `json:"location"`
	Type     *string `json:"type"`
	Weather  *string `json:"weather"`
	Notes    *string `json:"notes"`
	Gear     *string `json:"gear"`
}

// CreateTrip handles POST /trips. The owner is always the requester — the
// body carries no user reference.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var body createTripRequest
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Date == "" || body.Location == "" || body.Type == "" {
		respondError(w, http.StatusBadRequest, "date, location, and type required")
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	trip, err := s.trips.Create(r.Context(), req, domain.Trip{
		Date:     date,
		Location: body.Location,
		Type:     domain.TripType(body.Type),
		Weather:  body.Weather,
		Notes:    body.Notes,
		Gear:     body.Gear,
	})
	if err != nil {
		respondServiceError(w, r, err, "Trip not found")
		return
	}

	respondJSON(w, http.StatusCreated, tripToResponse(trip))
}

// ListTrips handles GET /trips. Scoped: non-admins only see their own trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	trips, err := s.trips.List(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, "Trip not found")
		return
	}

	respondJSON(w, http.StatusOK, tripsToResponse(trips))
}

// SearchTrips handles GET /trips/search?type=&startDate=&endDate=.
// Criteria are optional and AND'd together on top of the requester's scope.
func (s *Server) SearchTrips(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var filter domain.TripFilter
	q := r.URL.Query()
	if raw := q.Get("type"); raw != "" {
		tt := domain.TripType(raw)
		if !tt.Valid() {
			respondError(w, http.StatusBadRequest, "type must be fishing or hunting")
			return
		}
		filter.Type = &tt
	}
	if raw := q.Get("startDate"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		filter.StartDate = &d
	}
	if raw := q.Get("endDate"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return
		}
		filter.EndDate = &d
	}

	trips, err := s.trips.Search(r.Context(), req, filter)
	if err != nil {
		respondServiceError(w, r, err, "Trip not found")
		return
	}

	respondJSON(w, http.StatusOK, tripsToResponse(trips))
}

// GetTrip handles GET /trips/{id}. Owner or admin.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}

	trip, err := s.trips.Get(r.Context(), req, id)
	if err != nil {
		respondServiceError(w, r, err, "Trip not found")
		return
	}

	respondJSON(w, http.StatusOK, tripToResponse(trip))
}

// GetTripFull handles GET /trips/{id}/full: the trip plus its species records.
func (s *Server) GetTripFull(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}

	trip, records, err := s.trips.GetFull(r.Context(), req, id)
	if err != nil {
		respondServiceError(w, r, err, "Trip not found")
		return
	}

	resp := tripFullResponse{tripResponse: tripToResponse(trip), Species: make([]speciesResponse, len(records))}
	for i, sp := range records {
		resp.Species[i] = speciesToResponse(sp)
	}
	respondJSON(w, http.StatusOK, resp)
}

// UpdateTrip handles PUT /trips/{id}. Owner or admin.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}
	var body updateTripRequest
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	upd := domain.TripUpdate{
		Location: body.Location,
		Weather:  body.Weather,
		Notes:    body.Notes,
		Gear:     body.Gear,
	}
	if body.Date != nil {
		d, err := parseDate(*body.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		upd.Date = &d
	}
	if body.Type != nil {
		tt := domain.TripType(*body.Type)
		upd.Type = &tt
	}

	trip, err := s.trips.Update(r.Context(), req, id, upd)
	if err != nil {
		respondServiceError(w, r, err, "Trip not found")
		return
	}

	respondJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteTrip handles DELETE /trips/{id}. Owner or admin; species records go
// with the trip.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}

	if err := s.trips.Delete(r.Context(), req, id); err != nil {
		respondServiceError(w, r, err, "Trip not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Trip deleted"})
}

// tripToResponse converts a domain.Trip into its API representation.
func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:        t.ID.String(),
		UserID:    t.UserID.String(),
		Date:      t.Date.Format(dateLayout),
		Location:  t.Location,
		Type:      string(t.Type),
		Weather:   t.Weather,
		Notes:     t.Notes,
		Gear:      t.Gear,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func tripsToResponse(trips []domain.Trip) []tripResponse {
	resp := make([]tripResponse, len(trips))
	for i, t := range trips {
		resp[i] = tripToResponse(t)
	}
	return resp
}
