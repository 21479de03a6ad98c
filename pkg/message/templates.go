// Outbound message templates for the CESFAM Cholchol notification service.
package message

import (
	"fmt"
	"time"

	"github.com/citasalud/notifier/internal/entity"
)

const dateLayout = "02/01/2006"
const noDate = "sin fecha"

func formatDate(t *time.Time) string {
	if t == nil {
		return noDate
	}
	return t.Format(dateLayout)
}

// Reminder renders the appointment reminder text. Pure: the same record
// always yields byte-identical output.
func Reminder(rec *entity.AppointmentRecord) string {
	return fmt.Sprintf(`🏥 CESFAM Cholchol - Recordatorio de Cita 🏥

Hola %s,

Le recordamos que tiene programada una cita médica:

📅 Fecha: %s
👨‍⚕️ Profesional: %s
📋 Motivo: %s

📍 Lugar: Centro de Salud Familiar CESFAM Cholchol
Calle Anibal Pinto 552, Cholchol

📋 Recomendaciones:
- Llegar 15 minutos antes de su hora de cita
- Traer su cédula de identidad y carnet de salud
- Si no puede asistir, notificar con anticipación

Para confirmar, reagendar o consultar:
📧 Email: cholcholsome@gmail.com

*Este es un mensaje automático, por favor no responder directamente.*`,
		rec.PatientName, formatDate(rec.AppointmentDate), rec.Professional, rec.Reason)
}

// Reschedule renders the rescheduled-appointment notice. Falls back to the
// original professional when no reassignment was recorded.
func Reschedule(rec *entity.AppointmentRecord) string {
	professional := rec.ReassignedProfessional
	if professional == "" {
		professional = rec.Professional
	}

	return fmt.Sprintf(`🏥 CESFAM Cholchol - Cambio de Cita 🏥

Hola %s,

Su cita ha sido reprogramada:

📅 Nueva Fecha: %s
👨‍⚕️ Profesional: %s
📋 Motivo: %s

*Mensaje automático*`,
		rec.PatientName, formatDate(rec.NewDate), professional, rec.Reason)
}
