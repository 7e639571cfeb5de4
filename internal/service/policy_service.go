package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"claimlens/internal/domain"
	"claimlens/internal/port"
)

// PolicyService manages policy rules and the insurer/plan catalog.
type PolicyService struct {
	repo port.PolicyRepository
}

func NewPolicyService(repo port.PolicyRepository) *PolicyService {
	return &PolicyService{repo: repo}
}

func (s *PolicyService) Lookup(ctx context.Context, insurer, plan string) (*domain.PolicyRule, error) {
	rule, err := s.repo.GetByInsurerPlan(ctx, insurer, plan)
	if err != nil {
		return nil, fmt.Errorf("policy lookup %s/%s: %w", insurer, plan, err)
	}
	return rule, nil
}

// Catalog returns every insurer with its plan names, for the upload form.
func (s *PolicyService) Catalog(ctx context.Context) (map[string][]string, error) {
	rules, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("policy catalog: %w", err)
	}
	catalog := make(map[string][]string)
	for _, r := range rules {
		catalog[r.Insurer] = append(catalog[r.Insurer], r.Plan)
	}
	return catalog, nil
}

func (s *PolicyService) Insurers(ctx context.Context) ([]string, error) {
	return s.repo.ListInsurers(ctx)
}

func (s *PolicyService) Plans(ctx context.Context, insurer string) ([]string, error) {
	plans, err := s.repo.ListPlans(ctx, insurer)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, domain.ErrInsurerNotFound
	}
	return plans, nil
}

func (s *PolicyService) Upsert(ctx context.Context, rule *domain.PolicyRule) (*domain.PolicyRule, error) {
	if rule.Insurer == "" || rule.Plan == "" {
		return nil, fmt.Errorf("%w: insurer and plan are required", domain.ErrCorruptInput)
	}
	if err := s.repo.Upsert(ctx, rule); err != nil {
		return nil, fmt.Errorf("policy upsert: %w", err)
	}
	return rule, nil
}

func (s *PolicyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
