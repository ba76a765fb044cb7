// Package dispatch maps the active view of the dashboard to the screen the
// frontend must render, per role.
package dispatch

import "strings"

// ViewKey identifies a dashboard view. The set is closed: values coming from
// URLs or forms are converted with ParseViewKey before reaching the tables.
type ViewKey string

const (
	ViewDashboard               ViewKey = "dashboard"
	ViewConfiguracion           ViewKey = "configuracion"
	ViewUsuarios                ViewKey = "usuarios"
	ViewUnidades                ViewKey = "unidades"
	ViewVehiculos               ViewKey = "vehiculos"
	ViewCuotas                  ViewKey = "cuotas"
	ViewMultas                  ViewKey = "multas"
	ViewSeguridad               ViewKey = "seguridad"
	ViewAreas                   ViewKey = "areas"
	ViewReservas                ViewKey = "reservas"
	ViewMantenimiento           ViewKey = "mantenimiento"
	ViewMantenimientoPreventivo ViewKey = "mantenimiento_preventivo"
	ViewReporteAreas            ViewKey = "reporte_areas"
	ViewReporteBitacora         ViewKey = "reporte_bitacora"
	ViewComunicados             ViewKey = "comunicados"
	ViewNotificaciones          ViewKey = "notificaciones"
	ViewCuenta                  ViewKey = "cuenta"
	ViewHistorialPagos          ViewKey = "historial_pagos"
	ViewVisitantes              ViewKey = "visitantes"
)

var knownKeys = map[ViewKey]struct{}{
	ViewDashboard:               {},
	ViewConfiguracion:           {},
	ViewUsuarios:                {},
	ViewUnidades:                {},
	ViewVehiculos:               {},
	ViewCuotas:                  {},
	ViewMultas:                  {},
	ViewSeguridad:               {},
	ViewAreas:                   {},
	ViewReservas:                {},
	ViewMantenimiento:           {},
	ViewMantenimientoPreventivo: {},
	ViewReporteAreas:            {},
	ViewReporteBitacora:         {},
	ViewComunicados:             {},
	ViewNotificaciones:          {},
	ViewCuenta:                  {},
	ViewHistorialPagos:          {},
	ViewVisitantes:              {},
}

// ParseViewKey converts raw input into a ViewKey. Unknown input reports
// false; the caller decides the fallback.
func ParseViewKey(raw string) (ViewKey, bool) {
	k := ViewKey(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := knownKeys[k]; !ok {
		return "", false
	}
	return k, true
}

// Valid reports whether k belongs to the closed set.
func (k ViewKey) Valid() bool {
	_, ok := knownKeys[k]
	return ok
}

func (k ViewKey) String() string { return string(k) }
