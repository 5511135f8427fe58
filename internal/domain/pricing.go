package domain

// RentalPricing is a named price tier. Instruments reference a tier for the
// listed price; rentals snapshot the tier in effect when they were created.
type RentalPricing struct {
	ID         int32  `json:"id"`
	Name       string `json:"name"`
	PriceCents int32  `json:"price_cents"`
}
