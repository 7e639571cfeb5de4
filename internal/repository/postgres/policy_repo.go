package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimlens/internal/domain"
	"claimlens/internal/port"
)

type policyRepo struct {
	db *sqlx.DB
}

// NewPolicyRepo creates a new PostgreSQL-backed PolicyRepository.
func NewPolicyRepo(db *sqlx.DB) port.PolicyRepository {
	return &policyRepo{db: db}
}

func (r *policyRepo) Upsert(ctx context.Context, rule *domain.PolicyRule) error {
	now := time.Now().UTC()
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	rule.CreatedAt = now
	rule.UpdatedAt = now

	query := `INSERT INTO policy_rules (
		id, insurer, plan, coverage_percent, deductible, annual_limit,
		room_rent_limit, co_pay_percent, non_payable_keywords,
		processing_descriptor, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (insurer, plan) DO UPDATE SET
		coverage_percent = EXCLUDED.coverage_percent,
		deductible = EXCLUDED.deductible,
		annual_limit = EXCLUDED.annual_limit,
		room_rent_limit = EXCLUDED.room_rent_limit,
		co_pay_percent = EXCLUDED.co_pay_percent,
		non_payable_keywords = EXCLUDED.non_payable_keywords,
		processing_descriptor = EXCLUDED.processing_descriptor,
		updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.Insurer, rule.Plan, rule.CoveragePercent, rule.Deductible,
		rule.AnnualLimit, rule.RoomRentLimit, rule.CoPayPercent,
		rule.NonPayableKeywords, rule.ProcessingDescriptor,
		rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("policyRepo.Upsert: %w", err)
	}
	return nil
}

func (r *policyRepo) GetByInsurerPlan(ctx context.Context, insurer, plan string) (*domain.PolicyRule, error) {
	var rule domain.PolicyRule
	err := r.db.GetContext(ctx, &rule,
		"SELECT * FROM policy_rules WHERE insurer = $1 AND plan = $2", insurer, plan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("policyRepo.GetByInsurerPlan: %w", err)
	}
	return &rule, nil
}

func (r *policyRepo) ListAll(ctx context.Context) ([]domain.PolicyRule, error) {
	var rules []domain.PolicyRule
	err := r.db.SelectContext(ctx, &rules,
		"SELECT * FROM policy_rules ORDER BY insurer, plan")
	if err != nil {
		return nil, fmt.Errorf("policyRepo.ListAll: %w", err)
	}
	return rules, nil
}

func (r *policyRepo) ListInsurers(ctx context.Context) ([]string, error) {
	var insurers []string
	err := r.db.SelectContext(ctx, &insurers,
		"SELECT DISTINCT insurer FROM policy_rules ORDER BY insurer")
	if err != nil {
		return nil, fmt.Errorf("policyRepo.ListInsurers: %w", err)
	}
	return insurers, nil
}

func (r *policyRepo) ListPlans(ctx context.Context, insurer string) ([]string, error) {
	var plans []string
	err := r.db.SelectContext(ctx, &plans,
		"SELECT plan FROM policy_rules WHERE insurer = $1 ORDER BY plan", insurer)
	if err != nil {
		return nil, fmt.Errorf("policyRepo.ListPlans: %w", err)
	}
	return plans, nil
}

func (r *policyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM policy_rules WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("policyRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPolicyNotFound
	}
	return nil
}
