package dispatch

// ScreenID names a renderable dashboard screen.
type ScreenID string

const (
	ScreenAdminHome         ScreenID = "admin-home"
	ScreenResidentHome      ScreenID = "resident-home"
	ScreenProfileSettings   ScreenID = "profile-settings"
	ScreenUserManagement    ScreenID = "user-management"
	ScreenUnitManagement    ScreenID = "unit-management"
	ScreenVehicles          ScreenID = "vehicles"
	ScreenFeeConfiguration  ScreenID = "fee-configuration"
	ScreenFines             ScreenID = "fines"
	ScreenSecurityAI        ScreenID = "security-ai"
	ScreenCommonAreas       ScreenID = "common-areas"
	ScreenReservations      ScreenID = "reservations"
	ScreenMaintenance       ScreenID = "maintenance"
	ScreenPreventiveMaint   ScreenID = "preventive-maintenance"
	ScreenAreaUsageReport   ScreenID = "area-usage-report"
	ScreenAuditLogReport    ScreenID = "audit-log-report"
	ScreenAnnouncements     ScreenID = "announcements"
	ScreenNotificationAdmin ScreenID = "notification-admin"
	ScreenAccountStatement  ScreenID = "account-statement"
	ScreenPaymentHistory    ScreenID = "payment-history"
	ScreenVisitors          ScreenID = "visitors"
)

// ScreenDescriptor tells the frontend which component to mount and which
// condominium API endpoints it reads from.
type ScreenDescriptor struct {
	ID            ScreenID `json:"id"`
	Component     string   `json:"component"`
	Endpoints     []string `json:"endpoints,omitempty"`
	NeedsIdentity bool     `json:"needs_identity,omitempty"`
}

var screens = map[ScreenID]ScreenDescriptor{
	ScreenAdminHome:         {ID: ScreenAdminHome, Component: "AdminDashboard"},
	ScreenResidentHome:      {ID: ScreenResidentHome, Component: "ResidentDashboard"},
	ScreenProfileSettings:   {ID: ScreenProfileSettings, Component: "ConfiguracionPerfil", Endpoints: []string{"/api/perfiles-faciales/", "/api/ai-detection/"}, NeedsIdentity: true},
	ScreenUserManagement:    {ID: ScreenUserManagement, Component: "GestionUsuarios", Endpoints: []string{"/api/usuarios/", "/api/roles/"}},
	ScreenUnitManagement:    {ID: ScreenUnitManagement, Component: "GestionUnidades", Endpoints: []string{"/api/propiedades/"}},
	ScreenVehicles:          {ID: ScreenVehicles, Component: "GestionVehiculos", Endpoints: []string{"/api/vehiculos/"}, NeedsIdentity: true},
	ScreenFeeConfiguration:  {ID: ScreenFeeConfiguration, Component: "GestionCuotas", Endpoints: []string{"/api/pagos/"}},
	ScreenFines:             {ID: ScreenFines, Component: "GestionMultas", Endpoints: []string{"/api/multas/", "/api/detalle-multa/", "/api/propiedades/"}},
	ScreenSecurityAI:        {ID: ScreenSecurityAI, Component: "SeguridadIA", Endpoints: []string{"/api/ai-detection/"}},
	ScreenCommonAreas:       {ID: ScreenCommonAreas, Component: "GestionAreasComunes", Endpoints: []string{"/api/areas-comunes/", "/api/horarios/"}},
	ScreenReservations:      {ID: ScreenReservations, Component: "GestionReservas", Endpoints: []string{"/api/reservas/", "/api/areas-comunes/"}, NeedsIdentity: true},
	ScreenMaintenance:       {ID: ScreenMaintenance, Component: "GestionMantenimiento", Endpoints: []string{"/api/solicitudes-mantenimiento/"}, NeedsIdentity: true},
	ScreenPreventiveMaint:   {ID: ScreenPreventiveMaint, Component: "GestionMantenimientoPreventivo", Endpoints: []string{"/api/mantenimientos-preventivos/", "/api/tareas/"}},
	ScreenAreaUsageReport:   {ID: ScreenAreaUsageReport, Component: "Reportes", Endpoints: []string{"/api/reporte/"}},
	ScreenAuditLogReport:    {ID: ScreenAuditLogReport, Component: "ReporteBitacora", Endpoints: []string{"/api/reporte/bitacora/"}},
	ScreenAnnouncements:     {ID: ScreenAnnouncements, Component: "Comunicados", Endpoints: []string{"/api/comunicados/"}, NeedsIdentity: true},
	ScreenNotificationAdmin: {ID: ScreenNotificationAdmin, Component: "GestionNotificaciones", Endpoints: []string{"/api/enviar-notificacion/"}},
	ScreenAccountStatement:  {ID: ScreenAccountStatement, Component: "EstadoCuenta", Endpoints: []string{"/api/estado-cuenta/", "/api/pagar-cuota/"}},
	ScreenPaymentHistory:    {ID: ScreenPaymentHistory, Component: "HistorialPagos", Endpoints: []string{"/api/historial-pagos/", "/api/comprobante/"}},
	ScreenVisitors:          {ID: ScreenVisitors, Component: "GestionVisitantes", Endpoints: []string{"/api/pertenece/", "/api/lista-visitantes/"}, NeedsIdentity: true},
}

// Screen returns the descriptor for id. The returned value owns its slices.
func Screen(id ScreenID) (ScreenDescriptor, bool) {
	d, ok := screens[id]
	if !ok {
		return ScreenDescriptor{}, false
	}
	d.Endpoints = append([]string(nil), d.Endpoints...)
	return d, true
}
