package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimlens/internal/domain"
)

// MockPolicyRepo is a mock implementation of port.PolicyRepository.
type MockPolicyRepo struct {
	mock.Mock
}

func (m *MockPolicyRepo) Upsert(ctx context.Context, rule *domain.PolicyRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockPolicyRepo) GetByInsurerPlan(ctx context.Context, insurer, plan string) (*domain.PolicyRule, error) {
	args := m.Called(ctx, insurer, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyRule), args.Error(1)
}

func (m *MockPolicyRepo) ListAll(ctx context.Context) ([]domain.PolicyRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PolicyRule), args.Error(1)
}

func (m *MockPolicyRepo) ListInsurers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPolicyRepo) ListPlans(ctx context.Context, insurer string) ([]string, error) {
	args := m.Called(ctx, insurer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPolicyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
