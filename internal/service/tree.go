package service

import "saves/internal/domain/models"

// BuildTree links a flat list of collections into a forest of nested nodes.
// Children keep the input order. A row whose parent is absent from the input
// set (filtered out upstream, e.g. owned by another user) is dropped rather
// than promoted to root; the count of dropped rows is returned so callers can
// log the integrity gap. Runs in O(n).
func BuildTree(rows []models.Collection) ([]*models.CollectionNode, int) {
	nodes := make(map[string]*models.CollectionNode, len(rows))
	for _, row := range rows {
		nodes[row.ID] = &models.CollectionNode{
			ID:       row.ID,
			Name:     row.Name,
			ParentID: row.ParentID,
			Children: []*models.CollectionNode{},
		}
	}

	roots := []*models.CollectionNode{}
	dropped := 0
	for _, row := range rows {
		node := nodes[row.ID]
		if row.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*row.ParentID]
		if !ok {
			dropped++
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots, dropped
}
