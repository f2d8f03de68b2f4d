package category

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
	ParentID     string `json:"parentId,omitempty"`
	ProductCount int    `json:"productCount"`
}

// Node is a category with its children, as served by the tree endpoint.
type Node struct {
	Category
	Children []*Node `json:"children"`
}

// BuildTree links flat categories into parent/child nodes. Categories whose
// parent is missing from the input become roots. Input order is preserved.
func BuildTree(flat []Category) []*Node {
	nodes := make([]*Node, len(flat))
	byID := make(map[string]*Node, len(flat))
	for i, c := range flat {
		nodes[i] = &Node{Category: c, Children: []*Node{}}
		byID[c.ID] = nodes[i]
	}

	var roots []*Node
	for _, n := range nodes {
		if parent, ok := byID[n.ParentID]; ok && n.ParentID != "" {
			parent.Children = append(parent.Children, n)
		} else {
			roots = append(roots, n)
		}
	}
	return roots
}
