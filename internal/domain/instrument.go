package domain

// Instrument is an inventory item owned by the school. Availability is not a
// stored attribute: an instrument is available when it has no active rental.
type Instrument struct {
	ID         int32  `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Brand      string `json:"brand"`
	PriceCents int32  `json:"price_cents"`
	PricingID  int32  `json:"pricing_id"`
}
