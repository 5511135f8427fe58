package http

import (
	"net/http"

	"soundgood-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires the rental endpoints. Reads are open; mutations require a
// staff token.
func NewRouter(h *RentalHandler, tm security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/instruments/available", h.ListAvailableInstruments).Methods(http.MethodGet)
	api.HandleFunc("/pricing", h.ListPricingTiers).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}", h.GetRental).Methods(http.MethodGet)
	api.HandleFunc("/students/{id:[0-9]+}/rentals", h.ListStudentRentals).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(StaffAuth(tm))
	protected.HandleFunc("/rentals", h.CreateRental).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id:[0-9]+}", h.TerminateRental).Methods(http.MethodDelete)

	return r
}
