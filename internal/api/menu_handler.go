package api

import (
	"net/http"

	"menutree/internal/menus"
	"menutree/internal/wire"

	"github.com/go-chi/chi/v5"
)

type menuHandler struct {
	svc MenuService
	responder
}

func newMenuHandler(svc MenuService, rs responder) *menuHandler {
	return &menuHandler{svc: svc, responder: rs}
}

// List handles GET /api/menus.
func (h *menuHandler) List(w http.ResponseWriter, r *http.Request) {
	ms, err := h.svc.ListMenus(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, wire.FromMenus(ms))
}

// Stats handles GET /api/menus/stats.
func (h *menuHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.MenuStats(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, wire.FromStats(stats))
}

// Get handles GET /api/menus/{menuID}.
func (h *menuHandler) Get(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.GetMenuTree(r.Context(), chi.URLParam(r, "menuID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, wire.FromMenuTree(tree.Menu, tree.Forest))
}

// Create handles POST /api/menus.
func (h *menuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req wire.MenuRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	m, err := h.svc.CreateMenu(r.Context(), menus.MenuInput{Name: req.Name, Description: req.Description})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, wire.FromMenu(m))
}

// Update handles PUT /api/menus/{menuID}.
func (h *menuHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req wire.MenuRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	m, err := h.svc.UpdateMenu(r.Context(), chi.URLParam(r, "menuID"),
		menus.MenuInput{Name: req.Name, Description: req.Description})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, wire.FromMenu(m))
}

// Delete handles DELETE /api/menus/{menuID}.
func (h *menuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMenu(r.Context(), chi.URLParam(r, "menuID")); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondNoContent(w)
}
