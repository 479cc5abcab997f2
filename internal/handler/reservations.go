package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel-frontdesk/internal/model"
	"hotel-frontdesk/internal/service"
)

// ReservationHandler holds the HTTP handlers for the reservation ledger.
type ReservationHandler struct {
	svc *service.ReservationService
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// Routes mounts the reservation endpoints on a chi router.
func (h *ReservationHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/check-in", h.CheckIn)
	r.Post("/{id}/check-out", h.CheckOut)
}

// Create handles POST /reservations
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// List handles GET /reservations[?guest=&room=]
// Without criteria it returns the full ledger; guest matches the name
// case-insensitively as a substring, room matches the number exactly, and
// both together combine with AND.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.svc.Search(r.Context(),
		r.URL.Query().Get("guest"), r.URL.Query().Get("room"))
	if err != nil {
		respondError(w, err)
		return
	}
	if reservations == nil {
		reservations = []model.Reservation{}
	}
	writeJSON(w, http.StatusOK, reservations)
}

// Get handles GET /reservations/{id}
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Update handles PUT /reservations/{id}
func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Delete handles DELETE /reservations/{id}
func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckIn handles POST /reservations/{id}/check-in
func (h *ReservationHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.CheckIn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CheckOut handles POST /reservations/{id}/check-out
// The response carries the final reservation state plus the computed bill.
func (h *ReservationHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	res, price, err := h.svc.CheckOut(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.CheckOutResponse{Reservation: res, Price: price})
}
