package ir

// Find returns the first node with id in depth-first order (fields before
// options). The root itself never matches.
func (r *RootSchema) Find(id string) *SchemaItem {
	if r == nil || id == RootID {
		return nil
	}
	for _, f := range r.Fields {
		if found := f.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Find searches the subtree rooted at it, including it.
func (it *SchemaItem) Find(id string) *SchemaItem {
	if it == nil {
		return nil
	}
	if it.ID == id && id != RootID {
		return it
	}
	for _, f := range it.Fields {
		if found := f.Find(id); found != nil {
			return found
		}
	}
	for _, o := range it.Options {
		if found := o.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// RefTargets returns every object and union node in pre-order. These are the
// nodes a lazy reference may point at.
func RefTargets(r *RootSchema) []*SchemaItem {
	var out []*SchemaItem
	Walk(r, func(it *SchemaItem, _ int) bool {
		if it.Lazy == nil && IsContainer(it) {
			out = append(out, it)
		}
		return true
	})
	return out
}

// Walk visits every node below r in pre-order (fields, then options). depth
// is 1 for root fields. Returning false skips the node's children.
func Walk(r *RootSchema, fn func(it *SchemaItem, depth int) bool) {
	if r == nil {
		return
	}
	for _, f := range r.Fields {
		walk(f, 1, fn)
	}
}

// WalkItem is Walk for a subtree; it itself is visited at depth 0.
func WalkItem(it *SchemaItem, fn func(it *SchemaItem, depth int) bool) {
	walk(it, 0, fn)
}

func walk(it *SchemaItem, depth int, fn func(*SchemaItem, int) bool) {
	if it == nil || !fn(it, depth) {
		return
	}
	for _, f := range it.Fields {
		walk(f, depth+1, fn)
	}
	for _, o := range it.Options {
		walk(o, depth+1, fn)
	}
}

// Clone deep-copies it and assigns a fresh id to every node. Lazy refIds are
// copied verbatim, so references into the original subtree dangle in the
// copy until re-pointed.
func Clone(it *SchemaItem) *SchemaItem {
	if it == nil {
		return nil
	}
	cp := *it
	cp.ID = GenerateID()
	cp.Default = cloneValue(it.Default)
	cp.LiteralValue = cloneValue(it.LiteralValue)
	if it.Lazy != nil {
		cp.Lazy = &LazyRef{RefID: it.Lazy.RefID}
	}
	if it.Fields != nil {
		cp.Fields = make([]*SchemaItem, len(it.Fields))
		for i, f := range it.Fields {
			cp.Fields[i] = Clone(f)
		}
	}
	if it.Options != nil {
		cp.Options = make([]*SchemaItem, len(it.Options))
		for i, o := range it.Options {
			cp.Options[i] = Clone(o)
		}
	}
	return &cp
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}

// Index maps node ids to nodes for one tree. Reference edges (lazy refIds)
// are resolved through it rather than through pointers, so cyclic schemas
// stay plain trees.
type Index struct {
	byID map[string]*SchemaItem
	dups []string
}

// NewIndex indexes every node below r. When ids collide the first node in
// pre-order wins, matching Find.
func NewIndex(r *RootSchema) *Index {
	idx := &Index{byID: map[string]*SchemaItem{}}
	Walk(r, func(it *SchemaItem, _ int) bool {
		idx.add(it)
		return true
	})
	return idx
}

// NewItemIndex indexes a single subtree.
func NewItemIndex(it *SchemaItem) *Index {
	idx := &Index{byID: map[string]*SchemaItem{}}
	WalkItem(it, func(n *SchemaItem, _ int) bool {
		idx.add(n)
		return true
	})
	return idx
}

func (x *Index) add(it *SchemaItem) {
	if it.ID == "" || it.ID == RootID {
		return
	}
	if _, ok := x.byID[it.ID]; ok {
		x.dups = append(x.dups, it.ID)
		return
	}
	x.byID[it.ID] = it
}

// Lookup returns the node with id.
func (x *Index) Lookup(id string) (*SchemaItem, bool) {
	if x == nil {
		return nil, false
	}
	it, ok := x.byID[id]
	return it, ok
}

// Resolve follows a lazy node to its target. Chains of lazy nodes are
// followed until a non-lazy node is reached; cycles and dangling ids yield
// nil.
func (x *Index) Resolve(it *SchemaItem) *SchemaItem {
	seen := map[string]bool{}
	for it != nil && it.Lazy != nil {
		if seen[it.ID] {
			return nil
		}
		seen[it.ID] = true
		it, _ = x.Lookup(it.Lazy.RefID)
	}
	return it
}

// Len reports the number of distinct ids.
func (x *Index) Len() int { return len(x.byID) }

// Duplicates returns ids seen more than once, in encounter order.
func (x *Index) Duplicates() []string { return x.dups }
