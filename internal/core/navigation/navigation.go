// Package navigation builds the role-specific dashboard menu.
//
// Trees are static and at most two levels deep. A parent node has no view
// of its own; selecting it only toggles its expansion. Every leaf carries a
// dispatch.ViewKey that the dispatcher maps to a screen for the same role.
package navigation

import (
	"github.com/smartcondominium/portal/internal/core/dispatch"
	"github.com/smartcondominium/portal/internal/core/domain"
)

// Node is one menu entry.
type Node struct {
	Key      string           `json:"key"`
	View     dispatch.ViewKey `json:"view,omitempty"`
	Label    string           `json:"label"`
	Icon     string           `json:"icon"`
	SubLinks []Node           `json:"sub_links,omitempty"`
}

// IsParent reports whether the node groups children instead of opening a view.
func (n Node) IsParent() bool {
	return len(n.SubLinks) > 0
}

// ActionSignOut is the key of the sign-out chrome entry.
const ActionSignOut = "logout"

func leaf(view dispatch.ViewKey, label, icon string) Node {
	return Node{Key: string(view), View: view, Label: label, Icon: icon}
}

func parent(key, label, icon string, children ...Node) Node {
	return Node{Key: key, Label: label, Icon: icon, SubLinks: children}
}

var adminTree = []Node{
	leaf(dispatch.ViewDashboard, "Dashboard", "tachometer"),
	parent("usuarios_unidades", "Usuarios y Unidades", "users",
		leaf(dispatch.ViewUsuarios, "Usuarios", "user"),
		leaf(dispatch.ViewUnidades, "Unidades", "building"),
		leaf(dispatch.ViewVehiculos, "Vehículos", "car"),
	),
	parent("finanzas", "Finanzas", "dollar-sign",
		leaf(dispatch.ViewCuotas, "Configurar Cuotas", "file-invoice-dollar"),
		leaf(dispatch.ViewMultas, "Multas", "gavel"),
	),
	leaf(dispatch.ViewSeguridad, "Seguridad IA", "shield"),
	leaf(dispatch.ViewAreas, "Áreas Comunes", "building"),
	leaf(dispatch.ViewReservas, "Gestionar Reservas", "calendar"),
	parent("operaciones", "Mantenimiento", "tools",
		leaf(dispatch.ViewMantenimiento, "Solicitudes", "wrench"),
		leaf(dispatch.ViewMantenimientoPreventivo, "Preventivo", "calendar-check"),
	),
	parent("reportes", "Reportes", "chart-bar",
		leaf(dispatch.ViewReporteAreas, "Uso de Áreas", "chart-pie"),
		leaf(dispatch.ViewReporteBitacora, "Bitácora", "history"),
	),
	parent("comunicacion", "Comunicación", "bullhorn",
		leaf(dispatch.ViewComunicados, "Comunicados", "bullhorn"),
		leaf(dispatch.ViewNotificaciones, "Notificaciones", "bell"),
	),
}

var residentTree = []Node{
	leaf(dispatch.ViewDashboard, "Inicio", "home"),
	parent("mis_pagos", "Mis Pagos", "file-invoice-dollar",
		leaf(dispatch.ViewCuenta, "Estado de Cuenta", "file-invoice-dollar"),
		leaf(dispatch.ViewHistorialPagos, "Historial de Pagos", "history"),
	),
	leaf(dispatch.ViewReservas, "Reservar Áreas", "calendar"),
	leaf(dispatch.ViewVisitantes, "Mis Visitantes", "user-friends"),
	leaf(dispatch.ViewVehiculos, "Mis Vehículos", "car"),
	leaf(dispatch.ViewMantenimiento, "Mantenimiento", "tools"),
	leaf(dispatch.ViewComunicados, "Comunicados", "bullhorn"),
}

var chrome = []Node{
	leaf(dispatch.ViewConfiguracion, "Configuración", "cog"),
	{Key: ActionSignOut, Label: "Cerrar Sesión", Icon: "sign-out"},
}

// Tree returns a copy of the menu for kind. Any kind other than admin gets
// the resident tree.
func Tree(kind domain.RoleKind) []Node {
	if kind == domain.RoleAdmin {
		return clone(adminTree)
	}
	return clone(residentTree)
}

// Chrome returns the entries shown after the role tree for every role.
func Chrome() []Node {
	return clone(chrome)
}

// DefaultView is the key of the first node of the role's tree.
func DefaultView(kind domain.RoleKind) dispatch.ViewKey {
	return Tree(kind)[0].View
}

// Leaves flattens the role tree into its leaf views, in menu order.
func Leaves(kind domain.RoleKind) []dispatch.ViewKey {
	var out []dispatch.ViewKey
	for _, n := range Tree(kind) {
		if !n.IsParent() {
			out = append(out, n.View)
			continue
		}
		for _, c := range n.SubLinks {
			out = append(out, c.View)
		}
	}
	return out
}

// Find locates a node by key in the role tree or the chrome. The second
// result is the key of the enclosing parent, empty for top-level nodes.
func Find(kind domain.RoleKind, key string) (Node, string, bool) {
	for _, n := range append(Tree(kind), Chrome()...) {
		if n.Key == key {
			return n, "", true
		}
		for _, c := range n.SubLinks {
			if c.Key == key {
				return c, n.Key, true
			}
		}
	}
	return Node{}, "", false
}

func clone(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		if n.SubLinks != nil {
			out[i].SubLinks = clone(n.SubLinks)
		}
	}
	return out
}
