// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hoteldesk/internal/adapters/backoffice"
	"hoteldesk/internal/app"
	"hoteldesk/internal/domain"
)

type Handlers struct {
	Session     *app.Session
	Hotels      *app.HotelListController
	Detail      *app.HotelDetailController
	Adjustments *app.RateAdjustmentsController
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.Session))

		r.Get("/login", h.loginPage)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)

		r.Get("/hotels", h.listHotels)
		r.Post("/hotels", h.createHotel)
		r.Put("/hotels/{id}", h.updateHotel)
		r.Delete("/hotels/{id}", h.deleteHotel)

		r.Get("/hotels/{id}", h.hotelDetail)
		r.Post("/hotels/{id}/room-types", h.saveRoomType)
		r.Put("/room-types/{id}", h.saveRoomType)
		r.Delete("/room-types/{id}", h.deleteRoomType)
		r.Get("/room-types/{id}/history", h.adjustmentHistory)
		r.Post("/room-types/{id}/adjustments", h.submitAdjustment)

		r.Get("/rate-adjustments", h.adjustmentsPage)
		r.Post("/rate-adjustments", h.submitPageAdjustment)
		r.Get("/rate-adjustments/preview", h.previewRate)
	})
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

// Maps controller errors onto HTTP statuses. The controllers already
// normalized the user-facing message; the status only has to agree.
func writeControllerError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, app.ErrConfirmationRequired):
		writeProblem(w, http.StatusConflict, "Confirmation Required", message)
	case errors.Is(err, app.ErrSubmitInFlight):
		writeProblem(w, http.StatusConflict, "Submit In Flight", message)
	case errors.Is(err, backoffice.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", message)
	default:
		var apiErr *backoffice.APIError
		if errors.As(err, &apiErr) {
			writeProblem(w, apiErr.Status, "Request Failed", message)
			return
		}
		writeProblem(w, http.StatusBadRequest, "Request Failed", message)
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// ---- session ----

func (h *Handlers) loginPage(w http.ResponseWriter, r *http.Request) {
	if h.Session.Authenticated() {
		http.Redirect(w, r, "/hotels", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed form body")
		return
	}
	creds := domain.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if creds.Username == "" || creds.Password == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "username and password are required")
		return
	}
	if err := h.Session.Login(r.Context(), creds); err != nil {
		writeProblem(w, http.StatusUnauthorized, "Login Failed", backoffice.Message(err, "Invalid username or password"))
		return
	}
	http.Redirect(w, r, "/hotels", http.StatusSeeOther)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(r.Context()); err != nil {
		writeProblem(w, http.StatusInternalServerError, "Logout Failed", backoffice.Message(err, "Failed to log out"))
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ---- hotel list ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	_ = h.Hotels.Load(r.Context()) // load errors render inline in the view
	writeJSON(w, http.StatusOK, h.Hotels.View())
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed form body")
		return
	}
	active := r.PostFormValue("is_active") != "false"
	hotel, err := h.Hotels.Create(r.Context(), r.PostFormValue("name"), r.PostFormValue("location"), active)
	if err != nil {
		writeControllerError(w, err, h.Hotels.View().FormError)
		return
	}
	writeJSON(w, http.StatusCreated, hotel)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	var in domain.HotelUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	hotel, err := h.Hotels.Update(r.Context(), id, in)
	if err != nil {
		writeControllerError(w, err, h.Hotels.View().FormError)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	confirm := r.URL.Query().Get("confirm") == "true"
	if err := h.Hotels.Delete(r.Context(), id, confirm); err != nil {
		writeControllerError(w, err, backoffice.Message(err, "Failed to delete hotel"))
		return
	}
	writeJSON(w, http.StatusOK, h.Hotels.View())
}

// ---- hotel detail ----

func (h *Handlers) hotelDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	_ = h.Detail.Load(r.Context(), id)
	writeJSON(w, http.StatusOK, h.Detail.View())
}

// saveRoomType serves both create (POST under a hotel) and update (PUT on the
// room type). On POST the path id is the hotel, which Load already pinned, so
// the room type id is zero.
func (h *Handlers) saveRoomType(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed form body")
		return
	}
	var roomTypeID int64
	if r.Method == http.MethodPut {
		id, ok := pathID(r)
		if !ok {
			writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
			return
		}
		roomTypeID = id
	}
	rt, err := h.Detail.SaveRoomType(r.Context(), roomTypeID, r.PostFormValue("name"), r.PostFormValue("base_rate"))
	if err != nil {
		writeControllerError(w, err, h.Detail.View().FormError)
		return
	}
	status := http.StatusOK
	if roomTypeID == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, rt)
}

func (h *Handlers) deleteRoomType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	confirm := r.URL.Query().Get("confirm") == "true"
	if err := h.Detail.DeleteRoomType(r.Context(), id, confirm); err != nil {
		writeControllerError(w, err, backoffice.Message(err, "Failed to delete room type"))
		return
	}
	writeJSON(w, http.StatusOK, h.Detail.View())
}

func (h *Handlers) adjustmentHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	if err := h.Detail.LoadHistory(r.Context(), id); err != nil {
		writeProblem(w, http.StatusBadGateway, "Request Failed", backoffice.Message(err, "Failed to load adjustment history"))
		return
	}
	writeJSON(w, http.StatusOK, h.Detail.View().History[id])
}

func (h *Handlers) submitAdjustment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed form body")
		return
	}
	adj, err := h.Detail.SubmitAdjustment(r.Context(), id,
		r.PostFormValue("adjustment_amount"), r.PostFormValue("effective_date"), r.PostFormValue("reason"))
	if err != nil {
		writeControllerError(w, err, h.Detail.View().FormError)
		return
	}
	writeJSON(w, http.StatusCreated, adj)
}

// ---- rate adjustments page ----

// adjustmentsPage loads the cascade and applies any selection carried in the
// query string, mirroring the hotel and room type pickers.
func (h *Handlers) adjustmentsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.Adjustments.Load(ctx); err != nil {
		writeJSON(w, http.StatusOK, h.Adjustments.View())
		return
	}
	if s := r.URL.Query().Get("hotel_id"); s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			_ = h.Adjustments.SelectHotel(ctx, id)
		}
	}
	if s := r.URL.Query().Get("room_type_id"); s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			_ = h.Adjustments.SelectRoomType(ctx, id)
		}
	}
	writeJSON(w, http.StatusOK, h.Adjustments.View())
}

func (h *Handlers) submitPageAdjustment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed form body")
		return
	}
	adj, err := h.Adjustments.Submit(r.Context(),
		r.PostFormValue("adjustment_amount"), r.PostFormValue("effective_date"), r.PostFormValue("reason"))
	if err != nil {
		writeControllerError(w, err, h.Adjustments.View().FormError)
		return
	}
	writeJSON(w, http.StatusCreated, adj)
}

func (h *Handlers) previewRate(w http.ResponseWriter, r *http.Request) {
	rate, ok := h.Adjustments.Preview(r.URL.Query().Get("date"))
	if !ok {
		writeProblem(w, http.StatusConflict, "No Selection", "select a room type before previewing")
		return
	}
	writeJSON(w, http.StatusOK, rate)
}
