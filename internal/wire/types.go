// Package wire holds the JSON shapes exchanged between the REST server and
// its clients, plus conversions to and from the domain model.
package wire

// TimeLayout renders timestamps in UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Menu is a menu without its items.
type Menu struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// MenuDetail is a menu with its items nested by parent. Items is always an
// array, never null.
type MenuDetail struct {
	Menu
	Items []ItemNode `json:"items"`
}

// Item is the flat representation of a menu item. ParentID is null for roots.
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parent_id"`
	MenuID    string  `json:"menu_id"`
	Depth     int     `json:"depth"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// ItemNode is an item with its children, as returned inside MenuDetail.
type ItemNode struct {
	Item
	Children []ItemNode `json:"children"`
}

// MenuStats summarizes the items of one menu.
type MenuStats struct {
	Menu
	TotalItems int `json:"total_items"`
	RootItems  int `json:"root_items"`
	MaxDepth   int `json:"max_depth"`
}

// ErrorEnvelope is the body of every failed request.
type ErrorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Message    string `json:"message"`
}

// Status is the body of the health endpoints.
type Status struct {
	Status string `json:"status"`
}
