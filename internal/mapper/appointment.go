package mapper

import (
	"sort"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
)

// GroupServices indexes appointment_services rows by appointment_id, keeping
// their order.
func GroupServices(services []gateway.Row) map[string][]gateway.Row {
	out := make(map[string][]gateway.Row)
	for _, s := range services {
		id := str(s, "appointment_id")
		out[id] = append(out[id], s)
	}
	return out
}

// AppointmentToDomain joins an appointments row with its appointment_services
// rows. Callers loading many appointments should pass each one only its own
// group from GroupServices; rows belonging to other appointments are ignored.
func AppointmentToDomain(row gateway.Row, services []gateway.Row) appointment.Appointment {
	a := appointment.Appointment{
		ID:             str(row, "id"),
		ClientID:       str(row, "client_id"),
		ProfessionalID: str(row, "professional_id"),
		Date:           date(row, "date"),
		StartTime:      clock(row, "start_time"),
		EndTime:        clock(row, "end_time"),
		Duration:       integer(row, "duration"),
		Status:         appointment.Status(str(row, "status")),
		PaymentStatus:  appointment.PaymentStatus(str(row, "payment_status")),
		TotalValue:     float(row, "total_value"),
		Notes:          str(row, "notes"),
		CreatedAt:      timestamp(row, "created_at"),
		Services:       []appointment.ServiceLineItem{},
	}
	if a.Status == "" {
		a.Status = appointment.InitialStatus()
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = appointment.PaymentPending
	}

	owned := make([]gateway.Row, 0, len(services))
	for _, s := range services {
		if str(s, "appointment_id") == a.ID {
			owned = append(owned, s)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return integer(owned[i], "position") < integer(owned[j], "position")
	})
	for _, s := range owned {
		a.Services = append(a.Services, ServiceLineItemToDomain(s))
	}
	return a
}

func ServiceLineItemToDomain(row gateway.Row) appointment.ServiceLineItem {
	return appointment.ServiceLineItem{
		ServiceID: str(row, "service_id"),
		Name:      str(row, "service_name"),
		Duration:  integer(row, "duration"),
		Price:     float(row, "price"),
	}
}

// AppointmentToWire returns the appointments row. Line items are written
// separately with ServiceLineItemsToWire once the parent id is known.
func AppointmentToWire(a appointment.Appointment) gateway.Row {
	row := gateway.Row{
		"client_id":       wireRef(a.ClientID),
		"professional_id": wireRef(a.ProfessionalID),
		"date":            wireDate(a.Date),
		"start_time":      a.StartTime,
		"end_time":        a.EndTime,
		"duration":        a.Duration,
		"status":          string(a.Status),
		"payment_status":  string(a.PaymentStatus),
		"total_value":     a.TotalValue,
		"notes":           a.Notes,
	}
	if a.ID != "" {
		row["id"] = a.ID
	}
	if !a.CreatedAt.IsZero() {
		row["created_at"] = wireTimestamp(a.CreatedAt)
	}
	return row
}

func ServiceLineItemsToWire(appointmentID string, items []appointment.ServiceLineItem) []gateway.Row {
	rows := make([]gateway.Row, 0, len(items))
	for i, s := range items {
		rows = append(rows, gateway.Row{
			"appointment_id": appointmentID,
			"service_id":     wireRef(s.ServiceID),
			"service_name":   s.Name,
			"duration":       s.Duration,
			"price":          s.Price,
			"position":       i,
		})
	}
	return rows
}

// AppointmentPatchToWire encodes only the fields present in p. Services are
// not part of the row.
func AppointmentPatchToWire(p appointment.Patch) gateway.Row {
	row := gateway.Row{}
	if p.ClientID != nil {
		row["client_id"] = wireRef(*p.ClientID)
	}
	if p.ProfessionalID != nil {
		row["professional_id"] = wireRef(*p.ProfessionalID)
	}
	if p.Date != nil {
		row["date"] = wireDate(*p.Date)
	}
	if p.StartTime != nil {
		row["start_time"] = *p.StartTime
	}
	if p.EndTime != nil {
		row["end_time"] = *p.EndTime
	}
	if p.Duration != nil {
		row["duration"] = *p.Duration
	}
	if p.Status != nil {
		row["status"] = string(*p.Status)
	}
	if p.PaymentStatus != nil {
		row["payment_status"] = string(*p.PaymentStatus)
	}
	if p.TotalValue != nil {
		row["total_value"] = *p.TotalValue
	}
	if p.Notes != nil {
		row["notes"] = *p.Notes
	}
	return row
}
