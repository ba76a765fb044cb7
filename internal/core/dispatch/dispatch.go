package dispatch

import "github.com/smartcondominium/portal/internal/core/domain"

// routes holds one finite key → screen table per role. configuracion is not
// listed; it resolves the same for everybody.
var routes = map[domain.RoleKind]map[ViewKey]ScreenID{
	domain.RoleAdmin: {
		ViewDashboard:               ScreenAdminHome,
		ViewUsuarios:                ScreenUserManagement,
		ViewUnidades:                ScreenUnitManagement,
		ViewVehiculos:               ScreenVehicles,
		ViewCuotas:                  ScreenFeeConfiguration,
		ViewMultas:                  ScreenFines,
		ViewSeguridad:               ScreenSecurityAI,
		ViewAreas:                   ScreenCommonAreas,
		ViewReservas:                ScreenReservations,
		ViewMantenimiento:           ScreenMaintenance,
		ViewMantenimientoPreventivo: ScreenPreventiveMaint,
		ViewReporteAreas:            ScreenAreaUsageReport,
		ViewReporteBitacora:         ScreenAuditLogReport,
		ViewComunicados:             ScreenAnnouncements,
		ViewNotificaciones:          ScreenNotificationAdmin,
	},
	domain.RoleResident: {
		ViewDashboard:      ScreenResidentHome,
		ViewCuenta:         ScreenAccountStatement,
		ViewHistorialPagos: ScreenPaymentHistory,
		ViewReservas:       ScreenReservations,
		ViewMantenimiento:  ScreenMaintenance,
		ViewComunicados:    ScreenAnnouncements,
		ViewVisitantes:     ScreenVisitors,
		ViewVehiculos:      ScreenVehicles,
	},
}

var titles = map[ViewKey]string{
	ViewNotificaciones:          "Gestión de Notificaciones",
	ViewConfiguracion:           "Configuración de Mi Perfil",
	ViewSeguridad:               "Seguridad IA",
	ViewReporteAreas:            "Reporte: Uso de Áreas Comunes",
	ViewReporteBitacora:         "Reporte: Bitácora del Sistema",
	ViewAreas:                   "Gestión de Áreas Comunes",
	ViewMultas:                  "Gestión de Multas",
	ViewMantenimiento:           "Gestión de Mantenimiento",
	ViewMantenimientoPreventivo: "Programación de Mantenimiento",
	ViewCuotas:                  "Configuración de Cuotas y Servicios",
	ViewVehiculos:               "Gestión de Vehículos",
	ViewVisitantes:              "Gestión de Visitantes",
	ViewReservas:                "Gestión de Reservas",
	ViewUsuarios:                "Gestión de Usuarios",
	ViewUnidades:                "Unidades Habitacionales",
	ViewCuenta:                  "Mi Estado de Cuenta",
	ViewHistorialPagos:          "Mi Historial de Pagos",
	ViewComunicados:             "Comunicados y Avisos",
}

const (
	TitleAdminHome    = "Dashboard Administrativo"
	TitleResidentHome = "Mi Espacio"
)

// Resolution is the outcome of dispatching one active view.
type Resolution struct {
	// Key is the view actually rendered; it differs from the request on
	// fallback.
	Key       ViewKey          `json:"key"`
	Requested string           `json:"requested,omitempty"`
	Screen    ScreenDescriptor `json:"screen"`
	Title     string           `json:"title"`
	Fallback  bool             `json:"fallback"`
}

// normalize collapses every non-admin kind onto resident.
func normalize(kind domain.RoleKind) domain.RoleKind {
	if kind == domain.RoleAdmin {
		return domain.RoleAdmin
	}
	return domain.RoleResident
}

// DefaultView is the landing key of every role.
func DefaultView(domain.RoleKind) ViewKey {
	return ViewDashboard
}

// DefaultTitle is the header caption of the role's landing screen.
func DefaultTitle(kind domain.RoleKind) string {
	if normalize(kind) == domain.RoleAdmin {
		return TitleAdminHome
	}
	return TitleResidentHome
}

// Lookup reports the screen mapped to key for kind without falling back.
func Lookup(key ViewKey, kind domain.RoleKind) (ScreenID, bool) {
	if key == ViewConfiguracion {
		return ScreenProfileSettings, true
	}
	id, ok := routes[normalize(kind)][key]
	return id, ok
}

// Resolve maps key to the screen for kind. A key with no mapping for the
// role degrades to the role's default screen; it never yields an empty
// resolution.
func Resolve(key ViewKey, kind domain.RoleKind) Resolution {
	res := Resolution{Requested: string(key)}
	id, ok := Lookup(key, kind)
	if !ok {
		key = DefaultView(kind)
		id, _ = Lookup(key, kind)
		res.Fallback = true
	}
	screen, _ := Screen(id)
	res.Key = key
	res.Screen = screen
	res.Title = TitleFor(key, kind)
	return res
}

// ResolveRaw parses raw at the boundary and resolves it. Unparseable input
// takes the same fallback path as an unmapped key.
func ResolveRaw(raw string, kind domain.RoleKind) Resolution {
	key, ok := ParseViewKey(raw)
	if !ok {
		res := Resolve(DefaultView(kind), kind)
		res.Requested = raw
		res.Fallback = raw != ""
		return res
	}
	return Resolve(key, kind)
}

// TitleFor is total over every key the dispatcher can produce: mapped keys
// get their own caption, everything else the role's default title.
func TitleFor(key ViewKey, kind domain.RoleKind) string {
	if key == DefaultView(kind) {
		return DefaultTitle(kind)
	}
	if _, ok := Lookup(key, kind); !ok {
		return DefaultTitle(kind)
	}
	if t, ok := titles[key]; ok {
		return t
	}
	return DefaultTitle(kind)
}

// Keys returns the keys mapped for kind, configuracion included.
func Keys(kind domain.RoleKind) []ViewKey {
	table := routes[normalize(kind)]
	out := make([]ViewKey, 0, len(table)+1)
	for k := range table {
		out = append(out, k)
	}
	return append(out, ViewConfiguracion)
}
