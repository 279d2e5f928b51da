package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/RecipeCraft_Go/internal/crafting"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// DiscoverRequest sets the discovered flag of a recipe
type DiscoverRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Discovered *bool  `json:"discovered" validate:"required"`
}

// InitializeRequest rebuilds the recipe registry
type InitializeRequest struct {
	Force bool `json:"force"`
}

// InitializeResponse reports how many recipes were added
type InitializeResponse struct {
	Message string `json:"message"`
	Added   int    `json:"added"`
}

// HandleListRecipes returns the discovered recipes, optionally filtered by ?category=
func HandleListRecipes(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")

		views, err := svc.ListRecipes(r.Context(), category)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListRecipesFailed, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, views)
	}
}

// HandleGetRecipe returns a single discovered recipe by name
func HandleGetRecipe(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		view, err := svc.GetRecipe(r.Context(), name)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, view)
	}
}

// HandleDiscoverRecipe sets or clears the discovered flag of a recipe
func HandleDiscoverRecipe(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DiscoverRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Discover recipe"); err != nil {
			return
		}

		if err := svc.SetDiscoveryStatus(r.Context(), req.Name, *req.Discovered); err != nil {
			logger.FromContext(r.Context()).Warn(ErrMsgDiscoverFailed, "recipe", req.Name, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDiscoveryUpdated})
	}
}

// HandleInitializeRecipes reloads recipe content, destructively when force is set
func HandleInitializeRecipes(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InitializeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Initialize recipes"); err != nil {
			return
		}

		added, err := svc.Reinitialize(r.Context(), req.Force)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgInitializeFailed, "force", req.Force, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, InitializeResponse{Message: MsgRecipesInitialized, Added: added})
	}
}
