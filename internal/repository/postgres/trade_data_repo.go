package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tradeflow/internal/domain"
	"tradeflow/internal/port"
)

type tradeDataRepo struct {
	db *sqlx.DB
}

// NewTradeDataRepo creates a new PostgreSQL-backed TradeDataRepository.
func NewTradeDataRepo(db *sqlx.DB) port.TradeDataRepository {
	return &tradeDataRepo{db: db}
}

func (r *tradeDataRepo) FindRoutes(ctx context.Context, origin, destination domain.Country) ([]domain.TradeRoute, error) {
	var routes []domain.TradeRoute
	err := r.db.SelectContext(ctx, &routes,
		`SELECT origin_country, destination_country, port_of_entry, mode, transit_days
		 FROM trade_routes
		 WHERE origin_country = $1 AND destination_country = $2 AND is_active
		 ORDER BY transit_days, port_of_entry`,
		string(origin), string(destination))
	if err != nil {
		return nil, fmt.Errorf("tradeDataRepo.FindRoutes: %w", err)
	}
	return routes, nil
}

func (r *tradeDataRepo) FindBusinessPattern(ctx context.Context, key string) (*domain.BusinessPattern, error) {
	var p domain.BusinessPattern
	err := r.db.GetContext(ctx, &p,
		`SELECT pattern_key, payload::text AS payload, updated_at FROM business_patterns WHERE pattern_key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tradeDataRepo.FindBusinessPattern: %w", err)
	}
	return &p, nil
}
