package client

import (
	"context"
	"net/http"
	"net/url"

	"menutree/internal/domain"
	"menutree/internal/graph"
	"menutree/internal/wire"
)

// MenuTree is a fetched menu with its items rebuilt into a forest.
type MenuTree struct {
	Menu   domain.Menu
	Forest *graph.Forest
}

func (c *Client) ListMenus(ctx context.Context, search string) ([]domain.Menu, error) {
	var q url.Values
	if search != "" {
		q = url.Values{"search": {search}}
	}
	var out []wire.Menu
	if err := c.do(ctx, http.MethodGet, "/api/menus", q, nil, &out); err != nil {
		return nil, err
	}
	ms := make([]domain.Menu, 0, len(out))
	for _, m := range out {
		ms = append(ms, m.ToDomain())
	}
	return ms, nil
}

func (c *Client) MenuStats(ctx context.Context) ([]domain.MenuStats, error) {
	var out []wire.MenuStats
	if err := c.do(ctx, http.MethodGet, "/api/menus/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	stats := make([]domain.MenuStats, 0, len(out))
	for _, s := range out {
		stats = append(stats, s.ToDomain())
	}
	return stats, nil
}

// GetMenuTree fetches a menu and rebuilds the nested items into a forest.
func (c *Client) GetMenuTree(ctx context.Context, id string) (MenuTree, error) {
	var out wire.MenuDetail
	if err := c.do(ctx, http.MethodGet, "/api/menus/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return MenuTree{}, err
	}
	return MenuTree{
		Menu:   out.Menu.ToDomain(),
		Forest: graph.Build(wire.Flatten(out.Items)),
	}, nil
}

func (c *Client) CreateMenu(ctx context.Context, name, description string) (domain.Menu, error) {
	var out wire.Menu
	req := wire.MenuRequest{Name: name, Description: description}
	if err := c.do(ctx, http.MethodPost, "/api/menus", nil, req, &out); err != nil {
		return domain.Menu{}, err
	}
	return out.ToDomain(), nil
}

func (c *Client) UpdateMenu(ctx context.Context, id, name, description string) (domain.Menu, error) {
	var out wire.Menu
	req := wire.MenuRequest{Name: name, Description: description}
	if err := c.do(ctx, http.MethodPut, "/api/menus/"+url.PathEscape(id), nil, req, &out); err != nil {
		return domain.Menu{}, err
	}
	return out.ToDomain(), nil
}

func (c *Client) DeleteMenu(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/menus/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) GetItem(ctx context.Context, id string) (domain.MenuItem, error) {
	var out wire.Item
	if err := c.do(ctx, http.MethodGet, "/api/menu-items/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return domain.MenuItem{}, err
	}
	return out.ToDomain(), nil
}

// ItemPath returns the ancestor chain of an item, root first.
func (c *Client) ItemPath(ctx context.Context, id string) ([]domain.MenuItem, error) {
	var out []wire.Item
	if err := c.do(ctx, http.MethodGet, "/api/menu-items/"+url.PathEscape(id)+"/path", nil, nil, &out); err != nil {
		return nil, err
	}
	path := make([]domain.MenuItem, 0, len(out))
	for _, it := range out {
		path = append(path, it.ToDomain())
	}
	return path, nil
}

// CreateItem adds an item; an empty parentID creates a root.
func (c *Client) CreateItem(ctx context.Context, name, menuID, parentID string) (domain.MenuItem, error) {
	var out wire.Item
	req := wire.CreateItemRequest{Name: name, MenuID: menuID, ParentID: wire.Ref(parentID)}
	if err := c.do(ctx, http.MethodPost, "/api/menu-items", nil, req, &out); err != nil {
		return domain.MenuItem{}, err
	}
	return out.ToDomain(), nil
}

// MoveItem reparents an item. Empty ids are omitted from the request.
func (c *Client) MoveItem(ctx context.Context, id, newParentID, newMenuID string) (domain.MenuItem, error) {
	var out wire.Item
	req := wire.MoveItemRequest{NewParentID: wire.Ref(newParentID), NewMenuID: wire.Ref(newMenuID)}
	if err := c.do(ctx, http.MethodPatch, "/api/menu-items/"+url.PathEscape(id)+"/move", nil, req, &out); err != nil {
		return domain.MenuItem{}, err
	}
	return out.ToDomain(), nil
}

func (c *Client) RenameItem(ctx context.Context, id, name string) (domain.MenuItem, error) {
	var out wire.Item
	req := wire.RenameItemRequest{Name: name}
	if err := c.do(ctx, http.MethodPatch, "/api/menu-items/"+url.PathEscape(id), nil, req, &out); err != nil {
		return domain.MenuItem{}, err
	}
	return out.ToDomain(), nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/menu-items/"+url.PathEscape(id), nil, nil, nil)
}

// Ready reports whether the server and its store answer.
func (c *Client) Ready(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/readyz", nil, nil, nil)
}
