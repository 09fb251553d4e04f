package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staff_reviews/internal/adapters/observability"
	"staff_reviews/internal/app"
	"staff_reviews/internal/domain"
)

type Handlers struct{ Records *app.RecordService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/reviews", h.createReview)
	s.mux.Get("/v1/reviews", h.listReviews)
	s.mux.Get("/v1/reviews/{id}", h.getReview)
	s.mux.Put("/v1/reviews/{id}", h.updateReview)
	s.mux.Delete("/v1/reviews/{id}", h.deleteReview)
}

type reviewPayload struct {
	Year       int    `json:"year"`
	Summary    string `json:"summary"`
	EmployeeID int64  `json:"employee_id"`
}

type reviewResponse struct {
	ID         int64  `json:"id"`
	Year       int    `json:"year"`
	Summary    string `json:"summary"`
	EmployeeID int64  `json:"employee_id"`
}

func toResponse(r *domain.Review) reviewResponse {
	return reviewResponse{ID: r.ID(), Year: r.Year(), Summary: r.Summary(), EmployeeID: r.EmployeeID()}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var in reviewPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be a JSON review")
		return
	}
	rv, err := h.Records.Create(r.Context(), in.Year, in.Summary, in.EmployeeID)
	if err != nil {
		if domain.IsValidation(err) {
			observability.ObserveRecord("create", "invalid")
			writeProblem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
			return
		}
		observability.ObserveRecord("create", "error")
		log.Error().Err(err).Msg("create review failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not create review")
		return
	}
	observability.ObserveRecord("create", "ok")
	writeJSON(w, http.StatusCreated, toResponse(rv))
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	all, err := h.Records.All(r.Context())
	if err != nil {
		observability.ObserveRecord("list", "error")
		log.Error().Err(err).Msg("list reviews failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list reviews")
		return
	}
	out := make([]reviewResponse, 0, len(all))
	for _, rv := range all {
		out = append(out, toResponse(rv))
	}
	observability.ObserveRecord("list", "ok")
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	rv, err := h.Records.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			observability.ObserveRecord("get", "missing")
			writeProblem(w, http.StatusNotFound, "Not Found", "review not found")
			return
		}
		observability.ObserveRecord("get", "error")
		log.Error().Err(err).Int64("id", id).Msg("get review failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not fetch review")
		return
	}
	observability.ObserveRecord("get", "ok")
	writeJSON(w, http.StatusOK, toResponse(rv))
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var in reviewPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be a JSON review")
		return
	}

	rv, err := h.Records.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			observability.ObserveRecord("update", "missing")
			writeProblem(w, http.StatusNotFound, "Not Found", "review not found")
			return
		}
		observability.ObserveRecord("update", "error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not fetch review")
		return
	}

	if err := h.applyPayload(r.Context(), rv, in); err != nil {
		if domain.IsValidation(err) {
			observability.ObserveRecord("update", "invalid")
			writeProblem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
			return
		}
		observability.ObserveRecord("update", "error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not validate review")
		return
	}

	if err := h.Records.Update(r.Context(), rv); err != nil {
		observability.ObserveRecord("update", "error")
		log.Error().Err(err).Int64("id", id).Msg("update review failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not update review")
		return
	}
	observability.ObserveRecord("update", "ok")
	writeJSON(w, http.StatusOK, toResponse(rv))
}

// applyPayload mutates through the validating setters so a partial failure
// leaves earlier assignments in place, mirroring direct setter use.
func (h *Handlers) applyPayload(ctx context.Context, rv *domain.Review, in reviewPayload) error {
	if err := rv.SetYear(in.Year); err != nil {
		return err
	}
	if err := rv.SetSummary(in.Summary); err != nil {
		return err
	}
	return h.Records.SetEmployee(ctx, rv, in.EmployeeID)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	rv, err := h.Records.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			observability.ObserveRecord("delete", "missing")
			writeProblem(w, http.StatusNotFound, "Not Found", "review not found")
			return
		}
		observability.ObserveRecord("delete", "error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not fetch review")
		return
	}
	if err := h.Records.Delete(r.Context(), rv); err != nil {
		observability.ObserveRecord("delete", "error")
		log.Error().Err(err).Int64("id", id).Msg("delete review failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not delete review")
		return
	}
	observability.ObserveRecord("delete", "ok")
	w.WriteHeader(http.StatusNoContent)
}
