package domain

// UnitAssignment links a user to a property (unit) of the condominium.
type UnitAssignment struct {
	CodigoUsuario   UserCode `json:"codigo_usuario"`
	CodigoPropiedad int      `json:"codigo_propiedad"`
	FechaIni        string   `json:"fecha_ini,omitempty"`
	FechaFin        string   `json:"fecha_fin,omitempty"`
}

// Visitor is a registered visitor of a unit.
type Visitor struct {
	ID              int    `json:"id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Carnet          string `json:"carnet"`
	MotivoVisita    string `json:"motivo_visita,omitempty"`
	FechaIni        string `json:"fecha_ini"`
	FechaFin        string `json:"fecha_fin"`
	CodigoPropiedad int    `json:"codigo_propiedad"`
}
