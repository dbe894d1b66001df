package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tradeflow/internal/domain"
	"tradeflow/internal/port"
)

type tariffRateRepo struct {
	db *sqlx.DB
}

// NewTariffRateRepo creates a new PostgreSQL-backed TariffRateRepository.
func NewTariffRateRepo(db *sqlx.DB) port.TariffRateRepository {
	return &tariffRateRepo{db: db}
}

// Base schedules per destination. tariff_rates_mexico stores the Mexican general
// import tax (IGI) and the T-MEC preferential rate under Spanish-derived names.
// Rows dated after the as-of day are not yet in force; among the rest the most
// recent dated row wins over an undated one.
var baseRateQueries = map[domain.Country]string{
	domain.CountryUS: `SELECT hs_code, mfn_rate, usmca_rate, effective_date, source
		FROM tariff_intelligence_master
		WHERE hs_code = $1
		  AND (effective_date IS NULL OR effective_date <= $2)
		ORDER BY effective_date DESC NULLS LAST
		LIMIT 1`,
	domain.CountryMX: `SELECT hs_code, igi_rate AS mfn_rate, tmec_rate AS usmca_rate, effective_date, source
		FROM tariff_rates_mexico
		WHERE hs_code = $1
		  AND (effective_date IS NULL OR effective_date <= $2)
		ORDER BY effective_date DESC NULLS LAST
		LIMIT 1`,
}

const policyByCodeQuery = `SELECT policy_type, hs_code AS hs_prefix, origin_country, rate,
		effective_from, effective_to, description
	FROM policy_tariffs_cache
	WHERE destination_country = ?
	  AND hs_code IN (?)
	  AND (origin_country IS NULL OR origin_country = ?)
	  AND (effective_from IS NULL OR effective_from <= ?)
	  AND (effective_to IS NULL OR effective_to >= ?)
	ORDER BY length(hs_code) DESC, policy_type`

const policyByChapterQuery = `SELECT policy_type, hs_chapter AS hs_prefix, origin_country, rate,
		effective_from, effective_to, description
	FROM policy_tariffs_international
	WHERE destination_country = $1
	  AND hs_chapter = $2
	  AND (origin_country IS NULL OR origin_country = $3)
	  AND (effective_from IS NULL OR effective_from <= $4)
	  AND (effective_to IS NULL OR effective_to >= $4)
	ORDER BY policy_type`

// asOfDay formats the day the schedule columns are compared against.
func asOfDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// buildPolicyByCodeQuery expands the code list and rebinds to postgres placeholders.
func buildPolicyByCodeQuery(destination domain.Country, codes []string, origin domain.Country, asOf time.Time) (string, []any, error) {
	day := asOfDay(asOf)
	query, args, err := sqlx.In(policyByCodeQuery, string(destination), codes, string(origin), day, day)
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(sqlx.DOLLAR, query), args, nil
}

func (r *tariffRateRepo) FindBaseRate(ctx context.Context, destination domain.Country, hsCode string, asOf time.Time) (*domain.TariffRateRecord, error) {
	query, ok := baseRateQueries[destination]
	if !ok {
		return nil, domain.UnsupportedDestinationError(destination)
	}

	var rec domain.TariffRateRecord
	if err := r.db.GetContext(ctx, &rec, query, hsCode, asOfDay(asOf)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tariffRateRepo.FindBaseRate: %w", err)
	}
	return &rec, nil
}

func (r *tariffRateRepo) FindPolicyAdjustments(ctx context.Context, destination domain.Country, codes []string, origin domain.Country, asOf time.Time) ([]domain.PolicyAdjustment, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	query, args, err := buildPolicyByCodeQuery(destination, codes, origin, asOf)
	if err != nil {
		return nil, fmt.Errorf("tariffRateRepo.FindPolicyAdjustments build: %w", err)
	}

	var adjustments []domain.PolicyAdjustment
	if err := r.db.SelectContext(ctx, &adjustments, query, args...); err != nil {
		return nil, fmt.Errorf("tariffRateRepo.FindPolicyAdjustments: %w", err)
	}
	return adjustments, nil
}

func (r *tariffRateRepo) FindChapterPolicies(ctx context.Context, destination domain.Country, chapter string, origin domain.Country, asOf time.Time) ([]domain.PolicyAdjustment, error) {
	var adjustments []domain.PolicyAdjustment
	err := r.db.SelectContext(ctx, &adjustments, policyByChapterQuery,
		string(destination), chapter, string(origin), asOfDay(asOf))
	if err != nil {
		return nil, fmt.Errorf("tariffRateRepo.FindChapterPolicies: %w", err)
	}
	return adjustments, nil
}
