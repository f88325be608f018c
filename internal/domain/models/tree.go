package models

// Breadcrumb is one step of the root-first path to a collection.
type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CollectionNode is a collection with its nested children, as served to the
// extension sidebar.
type CollectionNode struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	ParentID *string           `json:"parent_id"`
	Children []*CollectionNode `json:"children"`
}
