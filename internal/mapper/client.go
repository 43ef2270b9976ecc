package mapper

import (
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
)

func ClientToDomain(row gateway.Row) client.Client {
	c := client.Client{
		ID:          str(row, "id"),
		Name:        str(row, "name"),
		Email:       str(row, "email"),
		Phone:       str(row, "phone"),
		BirthDate:   date(row, "birth_date"),
		Status:      client.Status(str(row, "status")),
		Tags:        stringList(row, "tags"),
		Notes:       str(row, "notes"),
		Points:      integer(row, "points"),
		Cashback:    float(row, "cashback"),
		TotalSpent:  float(row, "total_spent"),
		VisitsCount: integer(row, "visits_count"),
		CreatedAt:   timestamp(row, "created_at"),
	}
	if c.Status == "" {
		c.Status = client.StatusActive
	}
	return c
}

func ClientToWire(c client.Client) gateway.Row {
	row := gateway.Row{
		"name":         c.Name,
		"email":        c.Email,
		"phone":        c.Phone,
		"birth_date":   wireDate(c.BirthDate),
		"status":       string(c.Status),
		"tags":         wireList(c.Tags),
		"notes":        c.Notes,
		"points":       c.Points,
		"cashback":     c.Cashback,
		"total_spent":  c.TotalSpent,
		"visits_count": c.VisitsCount,
	}
	if c.ID != "" {
		row["id"] = c.ID
	}
	if !c.CreatedAt.IsZero() {
		row["created_at"] = wireTimestamp(c.CreatedAt)
	}
	return row
}

func ClientPatchToWire(p client.Patch) gateway.Row {
	row := gateway.Row{}
	if p.Name != nil {
		row["name"] = *p.Name
	}
	if p.Email != nil {
		row["email"] = *p.Email
	}
	if p.Phone != nil {
		row["phone"] = *p.Phone
	}
	if p.BirthDate != nil {
		row["birth_date"] = wireDate(*p.BirthDate)
	}
	if p.Status != nil {
		row["status"] = string(*p.Status)
	}
	if p.Tags != nil {
		row["tags"] = wireList(*p.Tags)
	}
	if p.Notes != nil {
		row["notes"] = *p.Notes
	}
	if p.Points != nil {
		row["points"] = *p.Points
	}
	if p.Cashback != nil {
		row["cashback"] = *p.Cashback
	}
	if p.TotalSpent != nil {
		row["total_spent"] = *p.TotalSpent
	}
	if p.VisitsCount != nil {
		row["visits_count"] = *p.VisitsCount
	}
	return row
}
