package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"claimlens/internal/domain"
	"claimlens/internal/service"
	"claimlens/mocks"
)

func TestPolicyService_Catalog(t *testing.T) {
	repo := new(mocks.MockPolicyRepo)
	repo.On("ListAll", mock.Anything).Return([]domain.PolicyRule{
		{Insurer: "Acme Health", Plan: "Gold"},
		{Insurer: "Acme Health", Plan: "Silver"},
		{Insurer: "Umbrella", Plan: "Basic"},
	}, nil)

	catalog, err := service.NewPolicyService(repo).Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Gold", "Silver"}, catalog["Acme Health"])
	assert.Equal(t, []string{"Basic"}, catalog["Umbrella"])
}

func TestPolicyService_PlansUnknownInsurer(t *testing.T) {
	repo := new(mocks.MockPolicyRepo)
	repo.On("ListPlans", mock.Anything, "Nobody").Return([]string{}, nil)

	_, err := service.NewPolicyService(repo).Plans(context.Background(), "Nobody")
	assert.ErrorIs(t, err, domain.ErrInsurerNotFound)
}

func TestPolicyService_UpsertRequiresIdentity(t *testing.T) {
	svc := service.NewPolicyService(new(mocks.MockPolicyRepo))

	_, err := svc.Upsert(context.Background(), &domain.PolicyRule{Plan: "Gold"})
	assert.Error(t, err)

	_, err = svc.Upsert(context.Background(), &domain.PolicyRule{Insurer: "Acme Health"})
	assert.Error(t, err)
}

func TestPolicyService_Lookup(t *testing.T) {
	repo := new(mocks.MockPolicyRepo)
	rule := &domain.PolicyRule{Insurer: "Acme Health", Plan: "Gold"}
	repo.On("GetByInsurerPlan", mock.Anything, "Acme Health", "Gold").Return(rule, nil)
	repo.On("GetByInsurerPlan", mock.Anything, "Acme Health", "Platinum").Return(nil, domain.ErrPolicyNotFound)

	svc := service.NewPolicyService(repo)

	got, err := svc.Lookup(context.Background(), "Acme Health", "Gold")
	require.NoError(t, err)
	assert.Equal(t, rule, got)

	_, err = svc.Lookup(context.Background(), "Acme Health", "Platinum")
	assert.ErrorIs(t, err, domain.ErrPolicyNotFound)
}
