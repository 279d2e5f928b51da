package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/event"
)

// MockCraftingService implements crafting.Service for testing
type MockCraftingService struct {
	mock.Mock
}

func (m *MockCraftingService) ListRecipes(ctx context.Context, category string) ([]domain.RecipeView, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecipeView), args.Error(1)
}

func (m *MockCraftingService) GetRecipe(ctx context.Context, name string) (*domain.RecipeView, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecipeView), args.Error(1)
}

func (m *MockCraftingService) StartCraft(ctx context.Context, name string) (*domain.CraftStatus, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CraftStatus), args.Error(1)
}

func (m *MockCraftingService) Tick(ctx context.Context, n int) domain.CraftStatus {
	args := m.Called(ctx, n)
	return args.Get(0).(domain.CraftStatus)
}

func (m *MockCraftingService) CraftStatus(ctx context.Context) domain.CraftStatus {
	args := m.Called(ctx)
	return args.Get(0).(domain.CraftStatus)
}

func (m *MockCraftingService) SetDiscoveryStatus(ctx context.Context, name string, discovered bool) error {
	args := m.Called(ctx, name, discovered)
	return args.Error(0)
}

func (m *MockCraftingService) Reinitialize(ctx context.Context, force bool) (int, error) {
	args := m.Called(ctx, force)
	return args.Int(0), args.Error(1)
}

func (m *MockCraftingService) HandleItemUsed(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockCraftingService) Save(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCraftingService) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPool implements database.Pool for testing
type MockPool struct {
	mock.Mock
}

func (m *MockPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPool) Close() {
	m.Called()
}
