package api

import (
	"net/http"

	"menutree/internal/menus"
	"menutree/internal/wire"

	"github.com/go-chi/chi/v5"
)

type itemHandler struct {
	svc MenuService
	responder
}

func newItemHandler(svc MenuService, rs responder) *itemHandler {
	return &itemHandler{svc: svc, responder: rs}
}

// Create handles POST /api/menu-items.
func (h *itemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req wire.CreateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	item, err := h.svc.CreateItem(r.Context(), menus.CreateItemInput{
		Name:     req.Name,
		MenuID:   req.MenuID,
		ParentID: wire.Deref(req.ParentID),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, wire.FromItem(item))
}

// Move handles PATCH /api/menu-items/{itemID}/move.
func (h *itemHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req wire.MoveItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	item, err := h.svc.MoveItem(r.Context(), menus.MoveItemInput{
		ItemID:      chi.URLParam(r, "itemID"),
		NewParentID: wire.Deref(req.NewParentID),
		NewMenuID:   wire.Deref(req.NewMenuID),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, wire.FromItem(item))
}

// Get handles GET /api/menu-items/{itemID}.
func (h *itemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.GetItem(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, wire.FromItem(item))
}

// Path handles GET /api/menu-items/{itemID}/path.
func (h *itemHandler) Path(w http.ResponseWriter, r *http.Request) {
	path, err := h.svc.ItemPath(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, wire.FromItems(path))
}

// Rename handles PATCH /api/menu-items/{itemID}.
func (h *itemHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req wire.RenameItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	item, err := h.svc.RenameItem(r.Context(), chi.URLParam(r, "itemID"), req.Name)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, wire.FromItem(item))
}

// Delete handles DELETE /api/menu-items/{itemID}.
func (h *itemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteItem(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondNoContent(w)
}
