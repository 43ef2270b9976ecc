package mapper

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
)

var base = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func genDay() gopter.Gen {
	return gen.IntRange(0, 3650).Map(func(d int) time.Time {
		return base.AddDate(0, 0, d)
	})
}

func genStamp() gopter.Gen {
	return gen.Int64Range(1, 1e9).Map(func(ms int64) time.Time {
		return base.Add(time.Duration(ms) * time.Millisecond)
	})
}

func genMoney() gopter.Gen {
	return gen.IntRange(0, 1_000_000).Map(func(c int) float64 { return float64(c) / 100 })
}

func genWords() gopter.Gen {
	return gen.SliceOfN(3, gen.AlphaString()).Map(func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	})
}

func TestProperty_AppointmentRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	genItem := gopter.CombineGens(gen.Identifier(), gen.AlphaString(), gen.IntRange(5, 240), genMoney()).
		Map(func(v []interface{}) appointment.ServiceLineItem {
			return appointment.ServiceLineItem{
				ServiceID: v[0].(string),
				Name:      v[1].(string),
				Duration:  v[2].(int),
				Price:     v[3].(float64),
			}
		})

	genAppt := gopter.CombineGens(
		gen.Identifier(), gen.Identifier(), gen.Identifier(),
		genDay(), gen.IntRange(0, 1439), gen.IntRange(5, 480),
		gen.OneConstOf(appointment.StatusScheduled, appointment.StatusConfirmed, appointment.StatusCompleted, appointment.StatusCanceled, appointment.StatusPending),
		gen.OneConstOf(appointment.PaymentPending, appointment.PaymentPaid, appointment.PaymentPartial, appointment.PaymentRefunded),
		genMoney(), gen.AnyString(), gen.SliceOf(genItem), genStamp(),
	).Map(func(v []interface{}) appointment.Appointment {
		minute := v[4].(int)
		start := time.Date(0, 1, 1, minute/60, minute%60, 0, 0, time.UTC)
		items := v[10].([]appointment.ServiceLineItem)
		if items == nil {
			items = []appointment.ServiceLineItem{}
		}
		return appointment.Appointment{
			ID:             v[0].(string),
			ClientID:       v[1].(string),
			ProfessionalID: v[2].(string),
			Date:           v[3].(time.Time),
			StartTime:      start.Format("15:04"),
			EndTime:        start.Add(time.Duration(v[5].(int)) * time.Minute).Format("15:04"),
			Duration:       v[5].(int),
			Status:         v[6].(appointment.Status),
			PaymentStatus:  v[7].(appointment.PaymentStatus),
			TotalValue:     v[8].(float64),
			Notes:          v[9].(string),
			Services:       items,
			CreatedAt:      v[11].(time.Time),
		}
	})

	properties.Property("appointment survives toWire/toDomain", prop.ForAll(
		func(a appointment.Appointment) bool {
			row := AppointmentToWire(a)
			services := ServiceLineItemsToWire(a.ID, a.Services)
			return assert.ObjectsAreEqual(a, AppointmentToDomain(row, services))
		},
		genAppt,
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ProductRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	genProduct := gopter.CombineGens(
		gen.Identifier(), gen.AlphaString(), gen.AlphaString(), genMoney(),
		gen.Identifier(), genMoney(), genMoney(), gen.IntRange(0, 500), gen.IntRange(0, 50),
		gen.Bool(), genDay(), genWords(),
		gen.OneConstOf(stock.CommissionPercentage, stock.CommissionFixed), genMoney(),
	).Map(func(v []interface{}) stock.Product {
		p := stock.Product{
			ID:             v[0].(string),
			Name:           v[1].(string),
			Category:       v[2].(string),
			Unit:           "ml",
			UnitValue:      v[3].(float64),
			SupplierID:     v[4].(string),
			PurchasePrice:  v[5].(float64),
			SalePrice:      v[6].(float64),
			Quantity:       float64(v[7].(int)),
			MinQuantity:    float64(v[8].(int)),
			LinkedServices: v[11].([]string),
			Commission:     stock.Commission{Type: v[12].(stock.CommissionType), Value: v[13].(float64)},
		}
		if v[9].(bool) {
			p.ExpirationDate = v[10].(time.Time)
		}
		return p
	})

	properties.Property("product survives toWire/toDomain", prop.ForAll(
		func(p stock.Product) bool {
			return assert.ObjectsAreEqual(p, ProductToDomain(ProductToWire(p)))
		},
		genProduct,
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ClientRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	genClient := gopter.CombineGens(
		gen.Identifier(), gen.AlphaString(), gen.AlphaString(), gen.NumString(),
		genDay(), gen.OneConstOf(client.StatusActive, client.StatusVIP, client.StatusInactive),
		genWords(), gen.IntRange(0, 10000), genMoney(), genMoney(), gen.IntRange(0, 300), genStamp(),
	).Map(func(v []interface{}) client.Client {
		return client.Client{
			ID:          v[0].(string),
			Name:        v[1].(string),
			Email:       v[2].(string) + "@example.com",
			Phone:       v[3].(string),
			BirthDate:   v[4].(time.Time),
			Status:      v[5].(client.Status),
			Tags:        v[6].([]string),
			Points:      v[7].(int),
			Cashback:    v[8].(float64),
			TotalSpent:  v[9].(float64),
			VisitsCount: v[10].(int),
			CreatedAt:   v[11].(time.Time),
		}
	})

	properties.Property("client survives toWire/toDomain", prop.ForAll(
		func(c client.Client) bool {
			return assert.ObjectsAreEqual(c, ClientToDomain(ClientToWire(c)))
		},
		genClient,
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProfessionalRoundTripWithRelations(t *testing.T) {
	p := professional.Professional{
		ID:             "pro-1",
		Name:           "Carla",
		Email:          "carla@salao.com",
		Phone:          "11999990000",
		Status:         professional.StatusActive,
		HireDate:       base.AddDate(1, 2, 3),
		PaymentModel:   professional.PaymentHybrid,
		CommissionRate: 40,
		FixedSalary:    1800,
		Specialties: []professional.Specialty{
			{ID: "s1", Name: "Coloração", Color: "#ff0000", Active: true},
			{ID: "s2", Name: "Corte", Color: "#00ff00", Active: false},
		},
		WorkingDays: []string{"monday", "wednesday"},
		History: []professional.HistoryEntry{
			{ID: "h2", Date: base.AddDate(2, 0, 0), Type: "promotion", Description: "Senior"},
			{ID: "h1", Date: base.AddDate(1, 0, 0), Type: "hire", Description: "Contratada"},
		},
	}

	rel := ProfessionalRelations{
		Links:       SpecialtyLinksToWire(p.ID, p.SpecialtyIDs()),
		WorkingDays: WorkingDaysToWire(p.ID, p.WorkingDays),
	}
	for _, s := range p.Specialties {
		row := SpecialtyToWire(s)
		rel.Specialties = append(rel.Specialties, row)
	}
	for _, h := range p.History {
		rel.History = append(rel.History, HistoryEntryToWire(p.ID, h))
	}
	// rows of other professionals are ignored
	rel.WorkingDays = append(rel.WorkingDays, gateway.Row{"professional_id": "other", "day": "sunday"})

	assert.Equal(t, p, ProfessionalToDomain(ProfessionalToWire(p), rel))
}

func TestSupplierRoundTripDropsOrders(t *testing.T) {
	s := stock.Supplier{ID: "sup", Name: "Distribuidora", Address: "Rua A, 10", Orders: []stock.Order{}}
	assert.Equal(t, s, SupplierToDomain(SupplierToWire(s)))

	s.Orders = []stock.Order{{ID: "o1", Total: 10}}
	assert.Empty(t, SupplierToDomain(SupplierToWire(s)).Orders)
}

func TestNullsDecodeToZeroValues(t *testing.T) {
	row := gateway.Row{"id": "c1", "tags": nil, "birth_date": nil, "points": nil}
	c := ClientToDomain(row)

	assert.NotNil(t, c.Tags)
	assert.Empty(t, c.Tags)
	assert.True(t, c.BirthDate.IsZero())
	assert.Equal(t, client.StatusActive, c.Status)

	a := AppointmentToDomain(gateway.Row{"id": "a1"}, nil)
	assert.NotNil(t, a.Services)
	assert.Equal(t, appointment.StatusScheduled, a.Status)
	assert.Equal(t, appointment.PaymentPending, a.PaymentStatus)
}

func TestCoercion(t *testing.T) {
	row := gateway.Row{
		"num_str":  " 12.50",
		"bytes":    []byte("7"),
		"pg_time":  "09:30:00",
		"pg_array": "{vip,\"noivas\"}",
		"json":     `["a","b"]`,
		"ts":       time.Date(2026, 1, 2, 23, 30, 0, 0, time.FixedZone("BRT", -3*3600)),
		"ts_str":   "2026-01-02 10:00:00",
		"bool_str": "true",
		"int64":    int64(3),
	}

	assert.Equal(t, 12.5, float(row, "num_str"))
	assert.Equal(t, 7.0, float(row, "bytes"))
	assert.Equal(t, 0.0, float(row, "missing"))
	assert.Equal(t, "09:30", clock(row, "pg_time"))
	assert.Equal(t, []string{"vip", "noivas"}, stringList(row, "pg_array"))
	assert.Equal(t, []string{"a", "b"}, stringList(row, "json"))
	assert.Equal(t, time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), date(row, "ts"))
	assert.Equal(t, time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC), timestamp(row, "ts_str"))
	assert.True(t, boolean(row, "bool_str"))
	assert.Equal(t, 3, integer(row, "int64"))
}

func TestPatchesAreSparse(t *testing.T) {
	status := appointment.StatusConfirmed
	row := AppointmentPatchToWire(appointment.Patch{Status: &status})
	require.Len(t, row, 1)
	assert.Equal(t, "confirmed", row["status"])

	minQty := 3.0
	prow := ProductPatchToWire(stock.Patch{MinQuantity: &minQty})
	assert.Equal(t, gateway.Row{"min_quantity": 3.0}, prow)
	assert.NotContains(t, prow, "quantity")

	name := "Fornecedor"
	assert.Equal(t, gateway.Row{"name": "Fornecedor"}, SupplierPatchToWire(stock.SupplierPatch{Name: &name}))
}

func TestGroupServicesKeepsOrderPerAppointment(t *testing.T) {
	rows := []gateway.Row{
		{"appointment_id": "a1", "service_id": "corte", "position": 0},
		{"appointment_id": "a2", "service_id": "unha", "position": 0},
		{"appointment_id": "a1", "service_id": "escova", "position": 1},
	}

	groups := GroupServices(rows)
	require.Len(t, groups, 2)
	require.Len(t, groups["a1"], 2)
	assert.Equal(t, "escova", groups["a1"][1]["service_id"])

	a := AppointmentToDomain(gateway.Row{"id": "a2"}, groups["a2"])
	require.Len(t, a.Services, 1)
	assert.Equal(t, "unha", a.Services[0].ServiceID)
	assert.Empty(t, GroupServices(nil)["a1"])
}
