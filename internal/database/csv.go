package database

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/citasalud/notifier/internal/entity"
)

// Column headers are spelling-exact, taken from the clinic's spreadsheet.
const (
	colPatientID    = "RUT"
	colPatientName  = "NOMBRE_PACIENTE"
	colPhone        = "TELEFONO"
	colDate         = "FECHA_ATENCION"
	colReason       = "MOTIVO_CONSULTA"
	colProfessional = "PROFESIONAL"
	colNotified     = "¿NOTIFICADO?"
	colRescheduled  = "¿CAMBIO DE HORA?"
	colNewDate      = "NUEVA_FECHA"
	colReassigned   = "PROFESIONAL_REASIGNADO"
	colNotifDate    = "FECHA_NOTIFICACION"
	colNotifTime    = "HORA_NOTIFICACION"
	colNotifMethod  = "METODO_NOTIFICACION"
)

var exportHeader = []string{
	colPatientID, colPatientName, colPhone, colDate, colReason,
	colProfessional, colNotified, colRescheduled, colNewDate, colReassigned,
	colNotifDate, colNotifTime, colNotifMethod,
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseDate is permissive: anything unparseable becomes nil instead of an
// error, matching how the source spreadsheets arrive.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "si", "sí", "verdadero", "x":
		return true
	}
	return false
}

// ParseCSV reads the uploaded appointment table. Missing optional columns
// are synthesized as empty; only a missing header row is a structural error.
func ParseCSV(r io.Reader) ([]entity.AppointmentRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read appointment file: %w", err)
	}
	if len(rows) == 0 {
		return nil, entity.ErrMissingHeader
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]entity.AppointmentRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, entity.AppointmentRecord{
			PatientID:              cell(row, colPatientID),
			PatientName:            cell(row, colPatientName),
			Phone:                  cell(row, colPhone),
			AppointmentDate:        parseDate(cell(row, colDate)),
			Reason:                 cell(row, colReason),
			Professional:           cell(row, colProfessional),
			Notified:               parseBool(cell(row, colNotified)),
			Rescheduled:            parseBool(cell(row, colRescheduled)),
			NewDate:                parseDate(cell(row, colNewDate)),
			ReassignedProfessional: cell(row, colReassigned),
			NotifiedAtDate:         cell(row, colNotifDate),
			NotifiedAtTime:         cell(row, colNotifTime),
			NotificationMethod:     cell(row, colNotifMethod),
		})
	}

	return records, nil
}

// WriteCSV re-exports the mutated table with the notification-state columns
// populated, same header order as the clinic expects.
func WriteCSV(w io.Writer, records []entity.AppointmentRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	formatDate := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	}
	formatBool := func(b bool) string {
		if b {
			return "TRUE"
		}
		return "FALSE"
	}

	for _, rec := range records {
		row := []string{
			rec.PatientID,
			rec.PatientName,
			rec.Phone,
			formatDate(rec.AppointmentDate),
			rec.Reason,
			rec.Professional,
			formatBool(rec.Notified),
			formatBool(rec.Rescheduled),
			formatDate(rec.NewDate),
			rec.ReassignedProfessional,
			rec.NotifiedAtDate,
			rec.NotifiedAtTime,
			rec.NotificationMethod,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
