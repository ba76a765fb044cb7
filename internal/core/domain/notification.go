package domain

import "strings"

// Notification is one entry of /api/mis-notificaciones/.
type Notification struct {
	IDEnvio     int    `json:"id_envio"`
	Tipo        string `json:"tipo"`
	Descripcion string `json:"descripcion"`
	Fecha       string `json:"fecha"`
}

// IsPaymentReminder reports whether the notification is about a payment;
// the shell marks those with a warning icon.
func (n Notification) IsPaymentReminder() bool {
	return strings.Contains(strings.ToLower(n.Tipo), "pago")
}
