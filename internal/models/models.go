// Package models declares the Postgres schema behind the gateway tables.
// Rows travel through the gateway as maps; these structs only drive
// AutoMigrate, so column names must match the mapper's wire keys.
package models

// All returns every table in dependency order.
func All() []any {
	return []any{
		&BusinessSettings{},
		&Specialty{},
		&Professional{},
		&ProfessionalSpecialty{},
		&ProfessionalWorkingDay{},
		&ProfessionalHistory{},
		&Client{},
		&Supplier{},
		&Product{},
		&StockMovement{},
		&Appointment{},
		&AppointmentService{},
		&User{},
	}
}
