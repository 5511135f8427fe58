package postgres

import (
	"context"

	"soundgood-backend/internal/domain"
)

func (s *Store) ListTiers(ctx context.Context) ([]domain.RentalPricing, error) {
	const op = "list pricing tiers"
	rows, err := s.listPricing.QueryContext(ctx)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var tiers []domain.RentalPricing
	for rows.Next() {
		var p domain.RentalPricing
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents); err != nil {
			return nil, storeErr(op, err)
		}
		tiers = append(tiers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return tiers, nil
}
