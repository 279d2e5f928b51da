package handler

import (
	"net/http"

	"github.com/osse101/RecipeCraft_Go/internal/crafting"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// StartCraftRequest starts crafting a discovered recipe
type StartCraftRequest struct {
	Recipe string `json:"recipe" validate:"required,max=100"`
}

// HandleStartCraft resolves a craft and starts its timer. The outcome is
// only included in the status once the timer has run out.
func HandleStartCraft(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req StartCraftRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start craft"); err != nil {
			return
		}

		status, err := svc.StartCraft(r.Context(), req.Recipe)
		if err != nil {
			log.Warn(ErrMsgStartCraftFailed, "recipe", req.Recipe, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info(LogMsgCraftStarted, "recipe", req.Recipe, "craft_id", status.CraftID)
		respondJSON(w, http.StatusAccepted, status)
	}
}

// HandleCraftStatus returns the state of the current craft
func HandleCraftStatus(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.CraftStatus(r.Context()))
	}
}

// HandleSave writes recipe progress to the configured save slot
func HandleSave(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Save(r.Context()); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgSaveFailed, "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGameSaved})
	}
}

// HandleLoad restores recipe progress from the configured save slot
func HandleLoad(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Load(r.Context()); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgLoadFailed, "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGameLoaded})
	}
}
