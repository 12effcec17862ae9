// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
	"hotel_ops/internal/pricing"
	"hotel_ops/internal/shared"
)

const maxBody = 1 << 20

type Handlers struct {
	Hotel   *app.Hotel
	Reports *app.ReportService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Kind   string `json:"kind,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Post("/rooms", h.addRoom)
		r.Get("/rooms/available", h.listAvailable)
		r.Get("/rooms/{id}", h.getRoom)

		r.Post("/guests", h.addGuest)
		r.Get("/guests/{id}", h.getGuest)
		r.Post("/guests/{id}/services", h.requestService)
		r.Post("/guests/{id}/reservation", h.reserve)
		r.Delete("/guests/{id}/reservation", h.cancelReservation)

		r.Post("/staff", h.addStaff)
		r.Get("/staff/{id}", h.getStaff)
		r.Put("/staff/{id}/availability", h.setAvailability)
		r.Put("/staff/{id}/shift", h.setShift)
		r.Put("/staff/{id}/duties", h.setDuties)
		r.Put("/staff/{id}/floor", h.assignFloor)
		r.Put("/staff/{id}/experience", h.setExperience)

		r.Get("/summary", h.summary)
		r.Get("/first-guest-room", h.firstGuestRoom)
		r.Get("/quote", h.quote)
		r.Get("/compensation", h.compensation)
		r.Get("/events", h.events)

		r.Get("/menu", h.listMenu)
		r.Post("/menu", h.addMenuItem)
		r.Delete("/menu/{item}", h.removeMenuItem)
	})
}

// ---- response helpers ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemKind(w, status, title, "", detail)
}

func writeProblemKind(w http.ResponseWriter, status int, title, kind, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Kind: kind, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// statusFor maps an error kind onto its HTTP status.
func statusFor(kind string) int {
	switch kind {
	case domain.KindNone:
		return http.StatusOK
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidArgument:
		return http.StatusBadRequest
	case domain.KindInvalidGuest:
		return http.StatusUnprocessableEntity
	case domain.KindDuplicateKey, domain.KindInvalidStateTransition, domain.KindRoomUnavailable,
		domain.KindAlreadyCheckedIn, domain.KindNotCheckedIn:
		return http.StatusConflict
	case domain.KindNoStaffAvailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("internal error")
		detail = "internal error"
	}
	writeProblemKind(w, status, http.StatusText(status), kind, detail)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write cacheable body")
	}
}

// decode reads a JSON body into dst and runs its validate tags.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblemKind(w, http.StatusBadRequest, "Invalid body", domain.KindInvalidArgument, err.Error())
		return false
	}
	if err := shared.ValidateStruct(dst); err != nil {
		writeError(w, err)
		return false
	}
	return true
}

// ---- rooms ----

type roomRequest struct {
	ID          string  `json:"id" validate:"required"`
	Category    string  `json:"category"`
	NightlyRate float64 `json:"nightly_rate" validate:"gt=0"`
}

func (h *Handlers) addRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Hotel.AddRoom(r.Context(), domain.Room{ID: req.ID, Category: req.Category, NightlyRate: req.NightlyRate}); err != nil {
		writeError(w, err)
		return
	}
	room, err := h.Hotel.Room(req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *Handlers) listAvailable(w http.ResponseWriter, r *http.Request) {
	rooms := h.Reports.ListAvailable()
	if rooms == nil {
		rooms = []domain.Room{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rooms})
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.Hotel.Room(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, room)
}

// ---- guests ----

type guestRequest struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Age     int    `json:"age" validate:"gte=0"`
	Contact string `json:"contact"`
}

func (h *Handlers) addGuest(w http.ResponseWriter, r *http.Request) {
	var req guestRequest
	if !decode(w, r, &req) {
		return
	}
	g := domain.Guest{ID: req.ID, Person: domain.Person{Name: req.Name, Age: req.Age, Contact: req.Contact}}
	if err := h.Hotel.AddGuest(r.Context(), g); err != nil {
		writeError(w, err)
		return
	}
	h.writeGuest(w, req.ID, http.StatusCreated)
}

func (h *Handlers) getGuest(w http.ResponseWriter, r *http.Request) {
	g, err := h.Hotel.Guest(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, guestView{Guest: g, Phase: g.Phase()})
}

type guestView struct {
	domain.Guest
	Phase domain.StayPhase `json:"phase"`
}

func (h *Handlers) writeGuest(w http.ResponseWriter, id string, status int) {
	g, err := h.Hotel.Guest(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, guestView{Guest: g, Phase: g.Phase()})
}

type serviceRequest struct {
	Kind     domain.ServiceKind   `json:"kind" validate:"required"`
	RoomID   string               `json:"room_id"`
	Nights   int                  `json:"nights"`
	Tasks    domain.CleaningTasks `json:"tasks"`
	Dish     string               `json:"dish"`
	Quantity int                  `json:"quantity"`
}

// requestService always answers with the structured result; the status reflects the failure kind.
func (h *Handlers) requestService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if !decode(w, r, &req) {
		return
	}
	res := h.Hotel.RequestService(r.Context(), chi.URLParam(r, "id"), req.Kind, domain.ServiceParams{
		RoomID:   req.RoomID,
		Nights:   req.Nights,
		Tasks:    req.Tasks,
		Dish:     req.Dish,
		Quantity: req.Quantity,
	})
	status := http.StatusOK
	if res.Failure != nil {
		status = statusFor(res.Failure.Kind)
	}
	writeJSON(w, status, res)
}

type reservationRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

func (h *Handlers) reserve(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Hotel.Reserve(r.Context(), chi.URLParam(r, "id"), req.RoomID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Hotel.CancelReservation(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- staff ----

type staffRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Age     int    `json:"age" validate:"gte=0"`
	Contact string `json:"contact"`
	Role    string `json:"role" validate:"required,oneof=front-desk housekeeping culinary"`

	Shift             string   `json:"shift"`
	Duties            []string `json:"duties"`
	Floor             string   `json:"floor"`
	Available         *bool    `json:"available"`
	Specialty         string   `json:"specialty"`
	YearsOfExperience int      `json:"years_of_experience" validate:"gte=0"`
}

// profile builds the role variant. Housekeepers start available unless told otherwise.
func (req staffRequest) profile(role domain.Role) domain.Profile {
	switch role {
	case domain.RoleFrontDesk:
		return &domain.FrontDesk{Shift: req.Shift, Duties: req.Duties}
	case domain.RoleHousekeeping:
		available := true
		if req.Available != nil {
			available = *req.Available
		}
		return &domain.Housekeeping{Floor: req.Floor, Available: available}
	case domain.RoleCulinary:
		return &domain.Culinary{Specialty: req.Specialty, YearsOfExperience: req.YearsOfExperience}
	default:
		return nil
	}
}

func (h *Handlers) addStaff(w http.ResponseWriter, r *http.Request) {
	var req staffRequest
	if !decode(w, r, &req) {
		return
	}
	role, _ := domain.ParseRole(req.Role)
	m := domain.StaffMember{
		ID:      req.ID,
		Person:  domain.Person{Name: req.Name, Age: req.Age, Contact: req.Contact},
		Profile: req.profile(role),
	}
	out, err := h.Hotel.AddStaff(r.Context(), role, m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) getStaff(w http.ResponseWriter, r *http.Request) {
	m, err := h.Hotel.StaffMember(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type availabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

func (h *Handlers) setAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if !decode(w, r, &req) {
		return
	}
	writeStaff(w)(h.Hotel.SetAvailability(chi.URLParam(r, "id"), *req.Available))
}

type shiftRequest struct {
	Shift string `json:"shift" validate:"required"`
}

func (h *Handlers) setShift(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if !decode(w, r, &req) {
		return
	}
	writeStaff(w)(h.Hotel.SetShift(chi.URLParam(r, "id"), req.Shift))
}

type dutiesRequest struct {
	Duties []string `json:"duties" validate:"dive,required"`
}

func (h *Handlers) setDuties(w http.ResponseWriter, r *http.Request) {
	var req dutiesRequest
	if !decode(w, r, &req) {
		return
	}
	writeStaff(w)(h.Hotel.SetDuties(chi.URLParam(r, "id"), req.Duties))
}

type floorRequest struct {
	Floor string `json:"floor" validate:"required"`
}

func (h *Handlers) assignFloor(w http.ResponseWriter, r *http.Request) {
	var req floorRequest
	if !decode(w, r, &req) {
		return
	}
	writeStaff(w)(h.Hotel.AssignFloor(chi.URLParam(r, "id"), req.Floor))
}

type experienceRequest struct {
	Years int `json:"years" validate:"gte=0"`
}

func (h *Handlers) setExperience(w http.ResponseWriter, r *http.Request) {
	var req experienceRequest
	if !decode(w, r, &req) {
		return
	}
	writeStaff(w)(h.Hotel.SetYearsOfExperience(chi.URLParam(r, "id"), req.Years))
}

func writeStaff(w http.ResponseWriter) func(domain.StaffMember, error) {
	return func(m domain.StaffMember, err error) {
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// ---- reports ----

func (h *Handlers) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Reports.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, s)
}

func (h *Handlers) firstGuestRoom(w http.ResponseWriter, r *http.Request) {
	info, ok := h.Reports.FirstGuestRoomInfo()
	if !ok {
		writeProblemKind(w, http.StatusNotFound, "Not Found", domain.KindNotFound, "first guest is not checked in")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	roomID := q.Get("room_id")
	if roomID == "" {
		writeProblemKind(w, http.StatusBadRequest, "Invalid room_id", domain.KindInvalidArgument, "room_id is required")
		return
	}
	nights, err := strconv.Atoi(q.Get("nights"))
	if err != nil {
		writeProblemKind(w, http.StatusBadRequest, "Invalid nights", domain.KindInvalidArgument, "nights must be an integer")
		return
	}
	loyal, _ := strconv.ParseBool(q.Get("loyal"))

	out, err := h.Hotel.Quote(roomID, nights, loyal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) compensation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	base := pricing.StandardBaseSalary
	if bs := q.Get("base"); bs != "" {
		b, err := strconv.ParseFloat(bs, 64)
		if err != nil || b < 0 {
			writeProblemKind(w, http.StatusBadRequest, "Invalid base", domain.KindInvalidArgument, "base must be a non-negative number")
			return
		}
		base = b
	}
	tier := q.Get("tier")
	writeJSON(w, http.StatusOK, map[string]any{
		"base":         base,
		"tier":         tier,
		"compensation": h.Hotel.Compensation(base, tier),
	})
}

type eventView struct {
	ID         string           `json:"id"`
	Kind       domain.EventKind `json:"kind"`
	GuestID    string           `json:"guest_id,omitempty"`
	RoomID     string           `json:"room_id,omitempty"`
	StaffID    string           `json:"staff_id,omitempty"`
	Amount     *float64         `json:"amount,omitempty"`
	Payload    json.RawMessage  `json:"payload,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func (h *Handlers) events(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}
	evs, err := h.Hotel.RecentEvents(r.Context(), limit)
	if err != nil {
		writeError(w, fmt.Errorf("read journal: %w", err))
		return
	}
	out := make([]eventView, 0, len(evs))
	for _, e := range evs {
		out = append(out, eventView{
			ID: e.ID, Kind: e.Kind, GuestID: e.GuestID, RoomID: e.RoomID, StaffID: e.StaffID,
			Amount: e.Amount, Payload: e.Payload, OccurredAt: e.OccurredAt.UTC(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

// ---- menu ----

func (h *Handlers) listMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": h.Hotel.Menu()})
}

type menuRequest struct {
	Item string `json:"item" validate:"required"`
}

func (h *Handlers) addMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Hotel.AddMenuItem(req.Item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"items": h.Hotel.Menu()})
}

func (h *Handlers) removeMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Hotel.RemoveMenuItem(chi.URLParam(r, "item")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
