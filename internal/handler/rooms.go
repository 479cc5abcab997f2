package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hotel-frontdesk/internal/model"
	"hotel-frontdesk/internal/service"
)

// RoomHandler holds the HTTP handlers for the room catalog.
type RoomHandler struct {
	svc *service.RoomService
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(svc *service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

// Routes mounts the room endpoints on a chi router.
func (h *RoomHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/available", h.Available)
	r.Get("/{number}", h.GetByNumber)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	room, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

// List handles GET /rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if rooms == nil {
		rooms = []model.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

// Available handles GET /rooms/available?check_in=&check_out=[&include=]
// The include parameter names a room number forced into the result, used
// when editing a reservation so its own room stays selectable.
func (h *RoomHandler) Available(w http.ResponseWriter, r *http.Request) {
	in, err := time.Parse(time.DateOnly, r.URL.Query().Get("check_in"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "check_in must be a 2006-01-02 date")
		return
	}
	out, err := time.Parse(time.DateOnly, r.URL.Query().Get("check_out"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "check_out must be a 2006-01-02 date")
		return
	}
	var include *int
	if raw := r.URL.Query().Get("include"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "include must be a room number")
			return
		}
		include = &n
	}

	rooms, err := h.svc.Available(r.Context(), in, out, include)
	if err != nil {
		respondError(w, err)
		return
	}
	// zero available rooms is a reportable outcome, not an error
	if rooms == nil {
		rooms = []model.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

// GetByNumber handles GET /rooms/{number}
func (h *RoomHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "room number must be an integer")
		return
	}
	room, err := h.svc.GetByNumber(r.Context(), number)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// Update handles PUT /rooms/{id}
func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	room, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// Delete handles DELETE /rooms/{id}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
