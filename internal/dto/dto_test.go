package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
	"github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/permission"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func TestDateAcceptsDayAndTimestamp(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-10"`), &d))
	assert.Equal(t, day, d.Time)

	require.NoError(t, json.Unmarshal([]byte(`"2026-03-10T15:04:05-03:00"`), &d))
	assert.Equal(t, day, d.Time)

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"10/03/2026"`), &d))

	b, err := json.Marshal(Date{day})
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-10"`, string(b))

	b, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))
}

func TestAppointmentRequestDecodesCalendarDate(t *testing.T) {
	var r AppointmentRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "ignored",
		"client_id": "c1",
		"professional_id": "p1",
		"date": "2026-03-10",
		"start_time": "09:00",
		"end_time": "10:00",
		"services": [{"service_id": "corte", "name": "Corte", "duration": 60, "price": 80}]
	}`), &r))

	a := r.ToDomain()
	assert.Empty(t, a.ID)
	assert.Equal(t, day, a.Date)
	assert.Equal(t, "c1", a.ClientID)
	require.Len(t, a.Services, 1)
	assert.Equal(t, 80.0, a.Services[0].Price)
}

func TestPatchRequestsStaySparse(t *testing.T) {
	var r AppointmentPatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"notes": "chegar cedo"}`), &r))
	p := r.ToDomain()
	assert.Nil(t, p.Date)
	require.NotNil(t, p.Notes)
	assert.Equal(t, "chegar cedo", *p.Notes)

	require.NoError(t, json.Unmarshal([]byte(`{"date": "2026-03-10"}`), &r))
	p = r.ToDomain()
	require.NotNil(t, p.Date)
	assert.Equal(t, day, *p.Date)

	var c ClientPatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status": "vip"}`), &c))
	cp := c.ToDomain()
	assert.Nil(t, cp.BirthDate)
	assert.Equal(t, client.StatusVIP, *cp.Status)
}

func TestProfessionalRequestLinksSpecialties(t *testing.T) {
	var r ProfessionalRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Bia",
		"hire_date": "2025-01-02",
		"payment_model": "hybrid",
		"specialty_ids": ["s1", "s2"],
		"working_days": ["segunda", "terca"]
	}`), &r))

	p := r.ToDomain()
	assert.Equal(t, []string{"s1", "s2"}, p.SpecialtyIDs())
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), p.HireDate)
	assert.Equal(t, professional.PaymentHybrid, p.PaymentModel)
}

func TestAppointmentListResolvesNames(t *testing.T) {
	out := AppointmentList(
		[]appointment.Appointment{
			{ID: "a1", ClientID: "c1", ProfessionalID: "p1", Date: day},
			{ID: "a2", ClientID: "gone"},
		},
		[]client.Client{{ID: "c1", Name: "Ana"}},
		[]professional.Professional{{ID: "p1", Name: "Bia"}},
	)

	require.Len(t, out, 2)
	assert.Equal(t, "Ana", out[0].ClientName)
	assert.Equal(t, "Bia", out[0].ProfessionalName)
	assert.Empty(t, out[1].ClientName)

	b, err := json.Marshal(out[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"date":"2026-03-10"`)
}

func TestUserDTOFallsBackToRole(t *testing.T) {
	d := User(user.User{ID: "u1", Role: "professional"})
	assert.True(t, d.Permissions.HasPermission(permission.ModuleAppointments, permission.ActionEdit))
	assert.Equal(t, []permission.Module{permission.ModuleAppointments, permission.ModuleClients}, d.Modules)
}
