package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/vicwinsj/holidaze/internal/application/usecases"
	"github.com/vicwinsj/holidaze/internal/domain/venue"
)

// requestID returns the ID the request-ID middleware assigned, so error
// bodies and access logs carry the same identifier. The uuid fallback only
// fires when the handler runs outside the router's middleware chain.
func requestID(r *http.Request) string {
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		return rid
	}
	return uuid.New().String()
}

func (s *Server) handleVenues(w http.ResponseWriter, r *http.Request) {
	vs, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"venues": vs})
}

func (s *Server) handleVenue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blocked, err := s.avail.Execute(r.Context(), id)
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blocked": blocked})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), requestID(r))
		return
	}

	// The local filter path runs over the last-known collection; reloading
	// through the read-through cache keeps it fresh without hammering the
	// remote catalog.
	if !criteria.HasText() {
		if err := s.search.Refresh(r.Context()); err != nil {
			s.writeCatalogError(w, r, err)
			return
		}
	}

	results, err := s.search.Apply(r.Context(), criteria)
	if err != nil {
		var se *usecases.SearchError
		switch {
		case errors.As(err, &se):
			writeError(w, http.StatusBadGateway, se.Error(), requestID(r))
		case errors.Is(err, usecases.ErrSuperseded):
			writeError(w, http.StatusConflict, err.Error(), requestID(r))
		default:
			writeError(w, http.StatusInternalServerError, err.Error(), requestID(r))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"venues": results})
}

type reservationBody struct {
	VenueID  string `json:"venueId"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests"`
}

func (s *Server) handleReservation(w http.ResponseWriter, r *http.Request) {
	var body reservationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", requestID(r))
		return
	}
	if body.VenueID == "" {
		writeError(w, http.StatusBadRequest, "venueId is required", requestID(r))
		return
	}
	from, err := parseDay(body.DateFrom)
	if err != nil {
		writeError(w, http.StatusBadRequest, "dateFrom: "+err.Error(), requestID(r))
		return
	}
	to, err := parseDay(body.DateTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, "dateTo: "+err.Error(), requestID(r))
		return
	}

	v, err := s.catalog.Get(r.Context(), body.VenueID)
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}

	req := venue.ReservationRequest{
		VenueID:  body.VenueID,
		DateFrom: from,
		DateTo:   to,
		Guests:   body.Guests,
	}
	outcome, err := s.reserve.Execute(r.Context(), v, req)
	if err != nil {
		s.writeReservationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"state":   outcome.State.String(),
		"booking": outcome.Booking,
		"venue":   outcome.Venue,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeReservationError(w http.ResponseWriter, r *http.Request, err error) {
	rid := requestID(r)
	switch {
	case errors.Is(err, usecases.ErrInvalidRange), errors.Is(err, usecases.ErrOverCapacity):
		writeError(w, http.StatusBadRequest, err.Error(), rid)
	case errors.Is(err, usecases.ErrUnavailable),
		errors.Is(err, usecases.ErrSubmitInFlight),
		errors.Is(err, venue.ErrConflict):
		writeError(w, http.StatusConflict, err.Error(), rid)
	case errors.Is(err, venue.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), rid)
	default:
		s.writeCatalogError(w, r, err)
	}
}

func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	rid := requestID(r)
	switch {
	case errors.Is(err, venue.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), rid)
	case errors.Is(err, venue.ErrConflict):
		writeError(w, http.StatusConflict, err.Error(), rid)
	case errors.Is(err, venue.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), rid)
	case errors.Is(err, venue.ErrNetwork):
		writeError(w, http.StatusBadGateway, err.Error(), rid)
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), rid)
	}
}
