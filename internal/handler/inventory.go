package handler

import (
	"context"
	"net/http"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/inventory"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// PartyInventory is the inventory surface exposed over HTTP
type PartyInventory interface {
	Slots() []inventory.Slot
	Give(ctx context.Context, key domain.ItemKey, quantity int) error
	Use(ctx context.Context, key domain.ItemKey) (*domain.Item, error)
}

// ItemRequest identifies an item
type ItemRequest struct {
	Type string `json:"type" validate:"required,itemtype"`
	ID   int    `json:"id" validate:"min=1"`
}

func (r ItemRequest) key() domain.ItemKey {
	t, _ := domain.ParseItemType(r.Type)
	return domain.ItemKey{Type: t, ID: r.ID}
}

// AddItemRequest gives items to the party
type AddItemRequest struct {
	Type     string `json:"type" validate:"required,itemtype"`
	ID       int    `json:"id" validate:"min=1"`
	Quantity int    `json:"quantity" validate:"min=1,max=9999"`
}

// UseItemResponse describes the used item
type UseItemResponse struct {
	Item     string `json:"item"`
	Consumed bool   `json:"consumed"`
	Teaches  string `json:"teaches,omitempty"`
}

// InventoryHandler serves the party inventory
type InventoryHandler struct {
	party PartyInventory
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(party PartyInventory) *InventoryHandler {
	return &InventoryHandler{party: party}
}

// HandleGetInventory lists every held item
func (h *InventoryHandler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.party.Slots())
}

// HandleAddItem gives items to the party
func (h *InventoryHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add item"); err != nil {
		return
	}

	key := ItemRequest{Type: req.Type, ID: req.ID}.key()
	if err := h.party.Give(r.Context(), key, req.Quantity); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgAddItemFailed, "item", key.String(), "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemAddedSuccess})
}

// HandleUseItem uses one item. Items that teach a recipe discover it.
func (h *InventoryHandler) HandleUseItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req ItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Use item"); err != nil {
		return
	}

	key := req.key()
	it, err := h.party.Use(r.Context(), key)
	if err != nil {
		log.Warn(ErrMsgUseItemFailed, "item", key.String(), "error", err)
		respondServiceError(w, err)
		return
	}

	log.Info(LogMsgItemUsed, "item", key.String())
	respondJSON(w, http.StatusOK, UseItemResponse{
		Item:     it.Name,
		Consumed: it.Consumable,
		Teaches:  it.TeachesRecipe,
	})
}
