package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
)

func TestHandleStartCraft(t *testing.T) {
	InitValidator()

	started := &domain.CraftStatus{CraftID: "c-1", Phase: domain.CraftPhaseCrafting, Recipe: "Potion"}

	tests := []struct {
		name           string
		body           string
		result         *domain.CraftStatus
		err            error
		callsService   bool
		expectedStatus int
		expectedBody   string
	}{
		{"Started", `{"recipe":"Potion"}`, started, nil, true, http.StatusAccepted, `"phase":"crafting"`},
		{"Busy", `{"recipe":"Potion"}`, nil, domain.ErrCraftInProgress, true, http.StatusConflict, ErrMsgCraftInProgressError},
		{"Not eligible", `{"recipe":"Potion"}`, nil, domain.ErrNotEligible, true, http.StatusUnprocessableEntity, ErrMsgNotEligibleError},
		{"Locked", `{"recipe":"Potion"}`, nil, domain.ErrRecipeLocked, true, http.StatusConflict, ErrMsgRecipeLockedError},
		{"Missing recipe", `{}`, nil, nil, false, http.StatusBadRequest, `"recipe":"This field is required"`},
		{"Malformed", `{"recipe":`, nil, nil, false, http.StatusBadRequest, ErrMsgInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCraftingService)
			if tt.callsService {
				svc.On("StartCraft", mock.Anything, "Potion").Return(tt.result, tt.err)
			}

			req := httptest.NewRequest(http.MethodPost, "/craft", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			HandleStartCraft(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleStartCraft_HidesOutcome(t *testing.T) {
	svc := new(MockCraftingService)
	svc.On("StartCraft", mock.Anything, "Potion").Return(&domain.CraftStatus{
		CraftID: "c-1",
		Phase:   domain.CraftPhaseCrafting,
		Recipe:  "Potion",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/craft", bytes.NewBufferString(`{"recipe":"Potion"}`))
	rec := httptest.NewRecorder()
	HandleStartCraft(svc).ServeHTTP(rec, req)

	assert.NotContains(t, rec.Body.String(), "succeeded")
}

func TestHandleCraftStatus(t *testing.T) {
	svc := new(MockCraftingService)
	svc.On("CraftStatus", mock.Anything).Return(domain.CraftStatus{
		Phase:    domain.CraftPhaseFinished,
		Recipe:   "Potion",
		Elapsed:  120,
		Progress: 1,
		Result:   &domain.CraftAttemptResult{Succeeded: true},
	})

	req := httptest.NewRequest(http.MethodGet, "/craft", nil)
	rec := httptest.NewRecorder()
	HandleCraftStatus(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var status domain.CraftStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, domain.CraftPhaseFinished, status.Phase)
	require.NotNil(t, status.Result)
	assert.True(t, status.Result.Succeeded)
}

func TestHandleSaveAndLoad(t *testing.T) {
	tests := []struct {
		name           string
		handler        func(*MockCraftingService) http.HandlerFunc
		method         string
		err            error
		expectedStatus int
	}{
		{"Save ok", func(m *MockCraftingService) http.HandlerFunc { return HandleSave(m) }, "Save", nil, http.StatusOK},
		{"Save failed", func(m *MockCraftingService) http.HandlerFunc { return HandleSave(m) }, "Save", errors.New("db down"), http.StatusInternalServerError},
		{"Load ok", func(m *MockCraftingService) http.HandlerFunc { return HandleLoad(m) }, "Load", nil, http.StatusOK},
		{"Load failed", func(m *MockCraftingService) http.HandlerFunc { return HandleLoad(m) }, "Load", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCraftingService)
			svc.On(tt.method, mock.Anything).Return(tt.err)

			req := httptest.NewRequest(http.MethodPost, "/save", nil)
			rec := httptest.NewRecorder()
			tt.handler(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.err != nil {
				assert.NotContains(t, rec.Body.String(), "db down", "internal errors are not leaked")
			}
			svc.AssertExpectations(t)
		})
	}
}
