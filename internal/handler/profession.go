package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/toast"
)

// ProfessionLister exposes profession standings
type ProfessionLister interface {
	List() []domain.ProfessionInfo
	Get(profession string) (domain.ProfessionInfo, error)
}

// ToastSource hands out pending learn toasts
type ToastSource interface {
	Drain() []toast.Toast
}

// HandleGetProfessions lists every crafting profession with level and experience
func HandleGetProfessions(professions ProfessionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, professions.List())
	}
}

// HandleGetProfession returns one profession by name
func HandleGetProfession(professions ProfessionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := professions.Get(chi.URLParam(r, "name"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, info)
	}
}

// HandleDrainToasts returns and clears the pending learn toasts
func HandleDrainToasts(toasts ToastSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, toasts.Drain())
	}
}
