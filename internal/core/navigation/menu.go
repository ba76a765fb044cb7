package navigation

import (
	"sort"
	"strings"

	"github.com/smartcondominium/portal/internal/core/dispatch"
	"github.com/smartcondominium/portal/internal/core/domain"
)

// Expansion is the set of expanded parent keys. Each parent toggles
// independently; expansion never changes the active view.
type Expansion map[string]bool

// ParseExpansion reads a comma separated list of parent keys.
func ParseExpansion(raw string) Expansion {
	e := Expansion{}
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			e[k] = true
		}
	}
	return e
}

// Toggle flips key and returns the receiver.
func (e Expansion) Toggle(key string) Expansion {
	if e[key] {
		delete(e, key)
	} else {
		e[key] = true
	}
	return e
}

// Encode is the inverse of ParseExpansion with a stable order.
func (e Expansion) Encode() string {
	keys := make([]string, 0, len(e))
	for k, on := range e {
		if on {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// MenuItem is a node as rendered for one request.
type MenuItem struct {
	Node
	Active   bool       `json:"active"`
	Expanded bool       `json:"expanded,omitempty"`
	Children []MenuItem `json:"children,omitempty"`
}

// Menu is the rendered sidebar.
type Menu struct {
	Items  []MenuItem `json:"items"`
	Chrome []MenuItem `json:"chrome"`
}

// Build renders the role tree for active and expanded. A parent holding the
// active leaf is marked Active but keeps its own expansion state.
func Build(kind domain.RoleKind, active dispatch.ViewKey, expanded Expansion) Menu {
	m := Menu{}
	for _, n := range Tree(kind) {
		m.Items = append(m.Items, render(n, active, expanded))
	}
	for _, n := range Chrome() {
		m.Chrome = append(m.Chrome, render(n, active, expanded))
	}
	return m
}

func render(n Node, active dispatch.ViewKey, expanded Expansion) MenuItem {
	item := MenuItem{Node: n}
	if !n.IsParent() {
		item.Active = n.View != "" && n.View == active
		return item
	}
	for _, c := range n.SubLinks {
		child := render(c, active, expanded)
		if child.Active {
			item.Active = true
		}
		item.Children = append(item.Children, child)
	}
	item.Expanded = expanded[n.Key]
	item.SubLinks = nil
	return item
}
