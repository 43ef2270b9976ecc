package mapper

import (
	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
)

func ProductToDomain(row gateway.Row) stock.Product {
	return stock.Product{
		ID:             str(row, "id"),
		Name:           str(row, "name"),
		Category:       str(row, "category"),
		Unit:           str(row, "unit"),
		UnitValue:      float(row, "unit_value"),
		SupplierID:     str(row, "supplier_id"),
		PurchasePrice:  float(row, "purchase_price"),
		SalePrice:      float(row, "sale_price"),
		Quantity:       float(row, "quantity"),
		MinQuantity:    float(row, "min_quantity"),
		ExpirationDate: date(row, "expiration_date"),
		LinkedServices: stringList(row, "linked_services"),
		Commission: stock.Commission{
			Type:  stock.CommissionType(str(row, "commission_type")),
			Value: float(row, "commission_value"),
		},
	}
}

func ProductToWire(p stock.Product) gateway.Row {
	row := gateway.Row{
		"name":             p.Name,
		"category":         p.Category,
		"unit":             p.Unit,
		"unit_value":       p.UnitValue,
		"supplier_id":      wireRef(p.SupplierID),
		"purchase_price":   p.PurchasePrice,
		"sale_price":       p.SalePrice,
		"quantity":         p.Quantity,
		"min_quantity":     p.MinQuantity,
		"expiration_date":  wireDate(p.ExpirationDate),
		"linked_services":  wireList(p.LinkedServices),
		"commission_type":  string(p.Commission.Type),
		"commission_value": p.Commission.Value,
	}
	if p.ID != "" {
		row["id"] = p.ID
	}
	return row
}

// ProductPatchToWire never emits quantity.
func ProductPatchToWire(p stock.Patch) gateway.Row {
	row := gateway.Row{}
	if p.Name != nil {
		row["name"] = *p.Name
	}
	if p.Category != nil {
		row["category"] = *p.Category
	}
	if p.Unit != nil {
		row["unit"] = *p.Unit
	}
	if p.UnitValue != nil {
		row["unit_value"] = *p.UnitValue
	}
	if p.SupplierID != nil {
		row["supplier_id"] = wireRef(*p.SupplierID)
	}
	if p.PurchasePrice != nil {
		row["purchase_price"] = *p.PurchasePrice
	}
	if p.SalePrice != nil {
		row["sale_price"] = *p.SalePrice
	}
	if p.MinQuantity != nil {
		row["min_quantity"] = *p.MinQuantity
	}
	if p.ExpirationDate != nil {
		row["expiration_date"] = wireDate(*p.ExpirationDate)
	}
	if p.LinkedServices != nil {
		row["linked_services"] = wireList(*p.LinkedServices)
	}
	if p.Commission != nil {
		row["commission_type"] = string(p.Commission.Type)
		row["commission_value"] = p.Commission.Value
	}
	return row
}

func MovementToDomain(row gateway.Row) stock.Movement {
	return stock.Movement{
		ID:        str(row, "id"),
		ProductID: str(row, "product_id"),
		Type:      stock.MovementType(str(row, "type")),
		Quantity:  float(row, "quantity"),
		Reason:    str(row, "reason"),
		Notes:     str(row, "notes"),
		CreatedAt: timestamp(row, "created_at"),
	}
}

func MovementToWire(m stock.Movement) gateway.Row {
	row := gateway.Row{
		"product_id": m.ProductID,
		"type":       string(m.Type),
		"quantity":   m.Quantity,
		"reason":     m.Reason,
		"notes":      m.Notes,
	}
	if m.ID != "" {
		row["id"] = m.ID
	}
	if !m.CreatedAt.IsZero() {
		row["created_at"] = wireTimestamp(m.CreatedAt)
	}
	return row
}

// --------------------------------------------------
// Supplier
// --------------------------------------------------

func SupplierToDomain(row gateway.Row) stock.Supplier {
	return stock.Supplier{
		ID:          str(row, "id"),
		Name:        str(row, "name"),
		ContactName: str(row, "contact_name"),
		Email:       str(row, "email"),
		Phone:       str(row, "phone"),
		Document:    str(row, "document"),
		Address:     str(row, "address"),
		Notes:       str(row, "notes"),
		Orders:      []stock.Order{},
	}
}

// SupplierToWire drops Orders, which are not persisted.
func SupplierToWire(s stock.Supplier) gateway.Row {
	row := gateway.Row{
		"name":         s.Name,
		"contact_name": s.ContactName,
		"email":        s.Email,
		"phone":        s.Phone,
		"document":     s.Document,
		"address":      s.Address,
		"notes":        s.Notes,
	}
	if s.ID != "" {
		row["id"] = s.ID
	}
	return row
}

func SupplierPatchToWire(p stock.SupplierPatch) gateway.Row {
	row := gateway.Row{}
	for key, v := range map[string]*string{
		"name":         p.Name,
		"contact_name": p.ContactName,
		"email":        p.Email,
		"phone":        p.Phone,
		"document":     p.Document,
		"address":      p.Address,
		"notes":        p.Notes,
	} {
		if v != nil {
			row[key] = *v
		}
	}
	return row
}
