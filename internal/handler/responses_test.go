package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{fmt.Errorf("x | %w", domain.ErrRecipeNotFound), http.StatusNotFound, ErrMsgRecipeNotFoundError},
		{domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
		{domain.ErrSaveNotFound, http.StatusNotFound, ErrMsgSaveNotFoundError},
		{domain.ErrRecipeLocked, http.StatusConflict, ErrMsgRecipeLockedError},
		{domain.ErrCraftInProgress, http.StatusConflict, ErrMsgCraftInProgressError},
		{domain.ErrNotEligible, http.StatusUnprocessableEntity, ErrMsgNotEligibleError},
		{domain.ErrInsufficientQuantity, http.StatusUnprocessableEntity, ErrMsgInsufficientItemsError},
		{domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidRequestError},
		{errors.New("boom"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		status, msg := mapServiceErrorToUserMessage(tt.err)
		assert.Equal(t, tt.expectedStatus, status, "%v", tt.err)
		assert.Equal(t, tt.expectedMsg, msg, "%v", tt.err)
	}
}
