package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Option is the materialized form of one choice and its nested sub-choices.
type Option struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Children []Option `json:"children,omitempty"`
}

type optionNode struct {
	text     string
	parent   string
	children []string
}

// OptionTree keeps every option of a question in an arena keyed by id.
// Parent and children are id references, so lookups anywhere in the tree
// are a single map access. The zero value is an empty tree.
type OptionTree struct {
	nodes map[string]*optionNode
	roots []string
}

// NewOptionTree builds a flat tree with one top-level option per text.
func NewOptionTree(texts ...string) *OptionTree {
	t := &OptionTree{nodes: make(map[string]*optionNode, len(texts))}
	for _, text := range texts {
		id := NewID()
		t.nodes[id] = &optionNode{text: text}
		t.roots = append(t.roots, id)
	}
	return t
}

// AddOption appends an empty leaf. An empty parentID appends at top level.
func (t *OptionTree) AddOption(parentID string) (Option, error) {
	if t.nodes == nil {
		t.nodes = make(map[string]*optionNode)
	}

	id := NewID()
	if parentID == "" {
		t.nodes[id] = &optionNode{}
		t.roots = append(t.roots, id)
		return Option{ID: id}, nil
	}

	parent, ok := t.nodes[parentID]
	if !ok {
		return Option{}, notFound("option", parentID)
	}
	t.nodes[id] = &optionNode{parent: parentID}
	parent.children = append(parent.children, id)
	return Option{ID: id}, nil
}

func (t *OptionTree) UpdateOptionText(id, text string) error {
	n, ok := t.nodes[id]
	if !ok {
		return notFound("option", id)
	}
	n.text = text
	return nil
}

// RemoveOption drops the option and its whole subtree. The last remaining
// top-level option cannot be removed.
func (t *OptionTree) RemoveOption(id string) error {
	n, ok := t.nodes[id]
	if !ok {
		return notFound("option", id)
	}

	if n.parent == "" {
		if len(t.roots) <= 1 {
			return fmt.Errorf("option %q is the last one: %w", id, ErrMinimumReached)
		}
		t.roots = lo.Without(t.roots, id)
	} else if parent, ok := t.nodes[n.parent]; ok {
		parent.children = lo.Without(parent.children, id)
		if len(parent.children) == 0 {
			parent.children = nil
		}
	}

	t.drop(id)
	return nil
}

func (t *OptionTree) drop(id string) {
	n := t.nodes[id]
	delete(t.nodes, id)
	for _, child := range n.children {
		t.drop(child)
	}
}

// Count is the number of options across the whole tree.
func (t *OptionTree) Count() int {
	return len(t.nodes)
}

func (t *OptionTree) Has(id string) bool {
	_, ok := t.nodes[id]
	return ok
}

func (t *OptionTree) Find(id string) (Option, bool) {
	if _, ok := t.nodes[id]; !ok {
		return Option{}, false
	}
	return t.materialize(id), true
}

// Options returns the tree as a nested list in display order.
func (t *OptionTree) Options() []Option {
	return lo.Map(t.roots, func(id string, _ int) Option {
		return t.materialize(id)
	})
}

// IDs returns every option id in depth-first display order.
func (t *OptionTree) IDs() []string {
	ids := make([]string, 0, len(t.nodes))
	var walk func([]string)
	walk = func(level []string) {
		for _, id := range level {
			ids = append(ids, id)
			walk(t.nodes[id].children)
		}
	}
	walk(t.roots)
	return ids
}

func (t *OptionTree) materialize(id string) Option {
	n := t.nodes[id]
	o := Option{ID: id, Text: n.text}
	if len(n.children) > 0 {
		o.Children = lo.Map(n.children, func(child string, _ int) Option {
			return t.materialize(child)
		})
	}
	return o
}

func (t *OptionTree) Clone() *OptionTree {
	c := &OptionTree{
		nodes: make(map[string]*optionNode, len(t.nodes)),
		roots: append([]string(nil), t.roots...),
	}
	for id, n := range t.nodes {
		c.nodes[id] = &optionNode{
			text:     n.text,
			parent:   n.parent,
			children: append([]string(nil), n.children...),
		}
	}
	return c
}

// optionTreeFrom rebuilds the arena from a nested list. Ids must be unique
// across the whole tree.
func optionTreeFrom(options []Option) (*OptionTree, error) {
	t := &OptionTree{nodes: make(map[string]*optionNode)}

	var load func(parent string, level []Option) ([]string, error)
	load = func(parent string, level []Option) ([]string, error) {
		var ids []string
		for _, o := range level {
			if o.ID == "" {
				return nil, fmt.Errorf("option without id: %w", ErrInvalidConfig)
			}
			if _, dup := t.nodes[o.ID]; dup {
				return nil, fmt.Errorf("duplicate option id %q: %w", o.ID, ErrInvalidConfig)
			}
			n := &optionNode{text: o.Text, parent: parent}
			t.nodes[o.ID] = n
			children, err := load(o.ID, o.Children)
			if err != nil {
				return nil, err
			}
			n.children = children
			ids = append(ids, o.ID)
		}
		return ids, nil
	}

	roots, err := load("", options)
	if err != nil {
		return nil, err
	}
	t.roots = roots
	return t, nil
}

func (t *OptionTree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Options())
}

func (t *OptionTree) UnmarshalJSON(data []byte) error {
	var options []Option
	if err := json.Unmarshal(data, &options); err != nil {
		return err
	}
	loaded, err := optionTreeFrom(options)
	if err != nil {
		return err
	}
	*t = *loaded
	return nil
}
