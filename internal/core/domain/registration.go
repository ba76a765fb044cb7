package domain

// RegistrationSteps is the number of wizard steps before submission.
const RegistrationSteps = 3

// Registration is the accumulated payload of the registration wizard. The
// JSON names are the ones /api/auth/register/ expects.
type Registration struct {
	Nombre     string `json:"nombre" validate:"required"`
	Apellido   string `json:"apellido" validate:"required"`
	Correo     string `json:"correo" validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required,min=8"`
	Sexo       string `json:"sexo" validate:"required,oneof=M F"`
	Telefono   string `json:"telefono" validate:"required"`
}

// RegistrationDraft is the wizard state between requests.
type RegistrationDraft struct {
	Step int          `json:"step"`
	Data Registration `json:"data"`
}

// NewRegistrationDraft starts a wizard on step 1.
func NewRegistrationDraft() *RegistrationDraft {
	return &RegistrationDraft{Step: 1}
}

// StepFields lists the fields collected on each step.
var StepFields = map[int][]string{
	1: {"Nombre", "Apellido"},
	2: {"Correo", "Contrasena"},
	3: {"Telefono", "Sexo"},
}
