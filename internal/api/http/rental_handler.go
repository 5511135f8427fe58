package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"soundgood-backend/internal/domain"
	"soundgood-backend/internal/logger"
	"soundgood-backend/internal/service"

	"github.com/gorilla/mux"
)

// RentalHandler exposes the rental operations over JSON. It validates nothing
// beyond presence and shape of identifiers; all rental rules live below it.
type RentalHandler struct {
	svc service.RentalService
}

func NewRentalHandler(svc service.RentalService) *RentalHandler {
	return &RentalHandler{svc: svc}
}

type createRentalRequest struct {
	StudentID    int32 `json:"student_id"`
	InstrumentID int32 `json:"instrument_id"`
	PricingID    int32 `json:"pricing_id,omitempty"`
}

func (h *RentalHandler) ListAvailableInstruments(w http.ResponseWriter, r *http.Request) {
	instruments, err := h.svc.ListAvailableInstruments(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if instruments == nil {
		instruments = []domain.Instrument{}
	}
	writeJSON(w, http.StatusOK, instruments)
}

func (h *RentalHandler) ListPricingTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.svc.ListPricingTiers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if tiers == nil {
		tiers = []domain.RentalPricing{}
	}
	writeJSON(w, http.StatusOK, tiers)
}

func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rental, err := h.svc.CreateRental(r.Context(), req.StudentID, req.InstrumentID, req.PricingID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) TerminateRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid rental id", http.StatusBadRequest)
		return
	}
	if err := h.svc.TerminateRental(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid rental id", http.StatusBadRequest)
		return
	}
	rental, err := h.svc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) ListStudentRentals(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid student id", http.StatusBadRequest)
		return
	}
	rentals, err := h.svc.ListStudentRentals(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	writeJSON(w, http.StatusOK, rentals)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels to client errors and everything else to a
// generic 500 so infrastructure detail never reaches the wire.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingStudentID),
		errors.Is(err, domain.ErrMissingInstrumentID),
		errors.Is(err, domain.ErrMissingRentalID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrInstrumentNotAvailable):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrRentalNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		logger.Error("Request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
