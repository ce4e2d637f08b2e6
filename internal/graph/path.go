package graph

import "menutree/internal/domain"

// Path returns the items from a root down to the node with the given id,
// inclusive. The search is a depth-first pre-order walk and the first match
// wins. An id that is not in the forest, e.g. a stale selection, yields a
// not_found error.
func (f *Forest) Path(id string) ([]domain.MenuItem, error) {
	if !f.Contains(id) {
		return nil, nodeNotFoundError(id)
	}

	var trail []int
	var visit func(i int) bool
	visit = func(i int) bool {
		trail = append(trail, i)
		if f.nodes[i].Item.ID == id {
			return true
		}
		for _, c := range f.nodes[i].Children {
			if visit(c) {
				return true
			}
		}
		trail = trail[:len(trail)-1]
		return false
	}
	for _, r := range f.roots {
		if visit(r) {
			break
		}
	}

	out := make([]domain.MenuItem, 0, len(trail))
	for _, i := range trail {
		out = append(out, f.nodes[i].Item)
	}
	return out, nil
}

// Breadcrumb returns the names along Path(id).
func (f *Forest) Breadcrumb(id string) ([]string, error) {
	path, err := f.Path(id)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(path))
	for _, item := range path {
		names = append(names, item.Name)
	}
	return names, nil
}
