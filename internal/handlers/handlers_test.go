package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/notify"
	"github.com/BruksfildServices01/salon-manager/internal/payment"
	"github.com/BruksfildServices01/salon-manager/internal/storage"
	"github.com/BruksfildServices01/salon-manager/internal/store"
	ucAppointment "github.com/BruksfildServices01/salon-manager/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCheckout struct{}

func (fakeCheckout) CheckoutLink(_ context.Context, a appointment.Appointment) (payment.Checkout, error) {
	if a.PaymentStatus == appointment.PaymentPaid {
		return payment.Checkout{}, payment.ErrAlreadyPaid
	}
	return payment.Checkout{PreferenceID: "pref-" + a.ID, URL: "https://pay/" + a.ID}, nil
}

type env struct {
	r       *gin.Engine
	stores  *store.Set
	storage *storage.MemoryStorage
	ring    *notify.Ring
	client  string
	pro     string
}

func newEnv(t *testing.T, checkout CheckoutLinker) *env {
	t.Helper()
	ctx := context.Background()

	ring := notify.NewRing(10)
	stores := store.NewSet(store.Deps{Gateway: gateway.NewMemoryGateway(), Notifier: ring})
	require.NoError(t, stores.Start(ctx))
	t.Cleanup(stores.Close)

	cid, err := stores.Clients.Create(ctx, client.Client{Name: "Ana Souza", Phone: "11987654321", Status: client.StatusActive})
	require.NoError(t, err)
	pid, err := stores.Professionals.Create(ctx, professional.Professional{
		Name: "Bia", Status: professional.StatusActive, PaymentModel: professional.PaymentCommission, CommissionRate: 40,
	})
	require.NoError(t, err)

	mem := storage.NewMemoryStorage("https://cdn.test")
	e := &env{r: gin.New(), stores: stores, storage: mem, ring: ring, client: cid, pro: pid}

	appts := NewAppointmentHandler(stores,
		ucAppointment.NewCreateAppointment(stores.Appointments, stores.Clients, stores.Professionals),
		ucAppointment.NewCompleteAppointment(stores.Appointments, stores.Clients, stores.Locker, zap.NewNop()),
		ucAppointment.NewCancelAppointment(stores.Appointments),
		checkout,
	)
	e.r.GET("/appointments", appts.List)
	e.r.GET("/appointments/:id", appts.Get)
	e.r.POST("/appointments", appts.Create)
	e.r.PATCH("/appointments/:id", appts.Update)
	e.r.PATCH("/appointments/:id/status", appts.UpdateStatus)
	e.r.POST("/appointments/:id/checkout", appts.Checkout)
	e.r.DELETE("/appointments/:id", appts.Delete)

	clients := NewClientHandler(stores.Clients)
	e.r.GET("/clients", clients.List)
	e.r.POST("/clients", clients.Create)
	e.r.PATCH("/clients/:id", clients.Update)

	pros := NewProfessionalHandler(stores, "America/Sao_Paulo")
	pros.now = func() time.Time { return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC) }
	e.r.POST("/professionals", pros.Create)
	e.r.POST("/professionals/:id/history", pros.AddHistory)

	st := NewStockHandler(stores)
	e.r.GET("/products", st.ListProducts)
	e.r.GET("/products/:id", st.GetProduct)
	e.r.POST("/products", st.CreateProduct)
	e.r.POST("/products/:id/movements", st.RegisterMovement)

	sup := NewSupplierHandler(stores.Suppliers)
	e.r.POST("/suppliers", sup.Create)
	e.r.DELETE("/suppliers/:id", sup.Delete)

	settings := NewSettingsHandler(stores.Settings, mem, "logos", zap.NewNop())
	e.r.GET("/settings", settings.Get)
	e.r.PATCH("/settings", settings.Update)
	e.r.POST("/settings/logo", settings.UploadLogo)

	reports := NewReportHandler(stores, "America/Sao_Paulo")
	reports.now = func() time.Time { return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC) }
	e.r.GET("/reports/dashboard", reports.Dashboard)
	e.r.GET("/reports/revenue", reports.Revenue)

	e.r.GET("/notifications", NewNotificationHandler(ring).List)
	return e
}

func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	return decode[struct {
		Code string `json:"error_code"`
	}](t, w).Code
}

func (e *env) book(t *testing.T, start, end string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/appointments", gin.H{
		"client_id":       e.client,
		"professional_id": e.pro,
		"date":            "2026-03-10",
		"start_time":      start,
		"end_time":        end,
		"services":        []gin.H{{"service_id": "corte", "name": "Corte", "duration": 45, "price": 80}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		ID string `json:"id"`
	}](t, w).ID
}

// ======================================================
// APPOINTMENTS
// ======================================================

func TestAppointmentCreateAndList(t *testing.T) {
	e := newEnv(t, nil)
	id := e.book(t, "09:00", "09:45")

	w := e.do(t, http.MethodGet, "/appointments?date=2026-03-10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[struct {
		Data []struct {
			ID               string `json:"id"`
			Date             string `json:"date"`
			ClientName       string `json:"client_name"`
			ProfessionalName string `json:"professional_name"`
		} `json:"data"`
		Total int `json:"total"`
	}](t, w)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, id, list.Data[0].ID)
	assert.Equal(t, "2026-03-10", list.Data[0].Date)
	assert.Equal(t, "Ana Souza", list.Data[0].ClientName)
	assert.Equal(t, "Bia", list.Data[0].ProfessionalName)

	w = e.do(t, http.MethodGet, "/appointments?date=2026-03-11", nil)
	assert.Equal(t, 0, decode[struct {
		Total int `json:"total"`
	}](t, w).Total)

	w = e.do(t, http.MethodGet, "/appointments?from=ontem", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_from", errorCode(t, w))
}

func TestAppointmentConflictsAreRejected(t *testing.T) {
	e := newEnv(t, nil)
	e.book(t, "09:00", "09:45")

	w := e.do(t, http.MethodPost, "/appointments", gin.H{
		"client_id":       e.client,
		"professional_id": e.pro,
		"date":            "2026-03-10",
		"start_time":      "09:30",
		"end_time":        "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "time_slot_unavailable", errorCode(t, w))

	second := e.book(t, "10:00", "10:30")
	w = e.do(t, http.MethodPatch, "/appointments/"+second, gin.H{"start_time": "09:15"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "time_slot_unavailable", errorCode(t, w))

	w = e.do(t, http.MethodPatch, "/appointments/"+second, gin.H{"start_time": "10:15", "end_time": "10:45", "notes": "atrasou"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got, _ := e.stores.Appointments.Get(second)
	assert.Equal(t, "10:15", got.StartTime)
	assert.Equal(t, "atrasou", got.Notes)
}

func TestAppointmentStatusCompletionCreditsClient(t *testing.T) {
	e := newEnv(t, nil)
	id := e.book(t, "09:00", "09:45")

	w := e.do(t, http.MethodPatch, "/appointments/"+id+"/status", gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	c, _ := e.stores.Clients.Get(e.client)
	assert.Equal(t, 1, c.VisitsCount)
	assert.Equal(t, 80.0, c.TotalSpent)

	w = e.do(t, http.MethodPatch, "/appointments/"+id+"/status", gin.H{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "appointment_already_completed", errorCode(t, w))

	w = e.do(t, http.MethodPatch, "/appointments/"+id+"/status", gin.H{"status": "lost"})
	assert.Equal(t, "invalid_status", errorCode(t, w))

	w = e.do(t, http.MethodPatch, "/appointments/missing/status", gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAppointmentDelete(t *testing.T) {
	e := newEnv(t, nil)
	id := e.book(t, "09:00", "09:45")

	assert.Equal(t, http.StatusNoContent, e.do(t, http.MethodDelete, "/appointments/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/appointments/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodDelete, "/appointments/"+id, nil).Code)
}

func TestAppointmentCheckout(t *testing.T) {
	e := newEnv(t, nil)
	id := e.book(t, "09:00", "09:45")

	w := e.do(t, http.MethodPost, "/appointments/"+id+"/checkout", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	e = newEnv(t, fakeCheckout{})
	id = e.book(t, "09:00", "09:45")
	w = e.do(t, http.MethodPost, "/appointments/"+id+"/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://pay/"+id, decode[payment.Checkout](t, w).URL)

	paid := appointment.PaymentPaid
	require.NoError(t, e.stores.Appointments.Update(context.Background(), id, appointment.Patch{PaymentStatus: &paid}))
	w = e.do(t, http.MethodPost, "/appointments/"+id+"/checkout", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "already_paid", errorCode(t, w))
}

// ======================================================
// CLIENTS
// ======================================================

func TestClientValidationAndSearch(t *testing.T) {
	e := newEnv(t, nil)

	w := e.do(t, http.MethodPost, "/clients", gin.H{"name": "Caio", "email": "caio@"})
	assert.Equal(t, "invalid_email", errorCode(t, w))

	w = e.do(t, http.MethodPost, "/clients", gin.H{"name": "Caio", "phone": "123"})
	assert.Equal(t, "invalid_phone", errorCode(t, w))

	w = e.do(t, http.MethodPost, "/clients", gin.H{"name": "  ", "phone": "123"})
	assert.Equal(t, "name_required", errorCode(t, w))

	w = e.do(t, http.MethodPost, "/clients", gin.H{
		"name": "Caio", "email": " Caio@Mail.COM ", "phone": "+55 (21) 99876-5432", "status": "vip",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	type list struct {
		Data  []client.Client `json:"data"`
		Total int             `json:"total"`
	}
	got := decode[list](t, e.do(t, http.MethodGet, "/clients?query=caio", nil))
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "caio@mail.com", got.Data[0].Email)
	assert.Equal(t, "21998765432", got.Data[0].Phone)

	got = decode[list](t, e.do(t, http.MethodGet, "/clients?status=vip", nil))
	assert.Equal(t, 1, got.Total)

	got = decode[list](t, e.do(t, http.MethodGet, "/clients", nil))
	assert.Equal(t, 2, got.Total)

	w = e.do(t, http.MethodGet, "/clients?status=gold", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ======================================================
// PROFESSIONALS
// ======================================================

func TestProfessionalCreateAndHistory(t *testing.T) {
	e := newEnv(t, nil)

	w := e.do(t, http.MethodPost, "/professionals", gin.H{"name": "Duda", "payment_model": "salary"})
	assert.Equal(t, "invalid_payment_model", errorCode(t, w))

	w = e.do(t, http.MethodPost, "/professionals", gin.H{"name": "Duda", "commission_rate": 120})
	assert.Equal(t, "invalid_rates", errorCode(t, w))

	w = e.do(t, http.MethodPost, "/professionals/"+e.pro+"/history", gin.H{"type": "promotion", "description": "Sênior"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	p, _ := e.stores.Professionals.Get(e.pro)
	require.Len(t, p.History, 1)
	assert.True(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).Equal(p.History[0].Date), p.History[0].Date)
}

// ======================================================
// STOCK
// ======================================================

func TestStockMovements(t *testing.T) {
	e := newEnv(t, nil)

	w := e.do(t, http.MethodPost, "/products", gin.H{"name": "Shampoo", "quantity": 5, "min_quantity": 4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[struct {
		ID string `json:"id"`
	}](t, w).ID

	w = e.do(t, http.MethodPost, "/products/"+id+"/movements", gin.H{"type": "out", "quantity": 10})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "insufficient_stock", errorCode(t, w))

	w = e.do(t, http.MethodPost, "/products/"+id+"/movements", gin.H{"type": "out", "quantity": 2, "reason": "uso"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 3.0, decode[struct {
		Quantity float64 `json:"quantity"`
	}](t, w).Quantity)

	detail := decode[struct {
		LowStock  bool             `json:"low_stock"`
		Movements []stock.Movement `json:"movements"`
	}](t, e.do(t, http.MethodGet, "/products/"+id, nil))
	assert.True(t, detail.LowStock)
	assert.Len(t, detail.Movements, 2)

	low := decode[struct {
		Total int `json:"total"`
	}](t, e.do(t, http.MethodGet, "/products?low=true", nil))
	assert.Equal(t, 1, low.Total)

	w = e.do(t, http.MethodPost, "/products", gin.H{"name": "Gel", "supplier_id": "nope"})
	assert.Equal(t, "supplier_not_found", errorCode(t, w))
}

func TestSupplierInUseCannotBeDeleted(t *testing.T) {
	e := newEnv(t, nil)

	w := e.do(t, http.MethodPost, "/suppliers", gin.H{"name": "Distribuidora"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sid := decode[struct {
		ID string `json:"id"`
	}](t, w).ID

	w = e.do(t, http.MethodPost, "/products", gin.H{"name": "Tinta", "supplier_id": sid})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(t, http.MethodDelete, "/suppliers/"+sid, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "supplier_in_use", errorCode(t, w))
}

// ======================================================
// SETTINGS
// ======================================================

func TestSettingsUpdate(t *testing.T) {
	e := newEnv(t, nil)

	w := e.do(t, http.MethodPatch, "/settings", gin.H{"timezone": "Mars/Olympus"})
	assert.Equal(t, "invalid_timezone", errorCode(t, w))

	w = e.do(t, http.MethodPatch, "/settings", gin.H{"name": "Studio Bela", "timezone": "America/Manaus"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Studio Bela", e.stores.Settings.Current().Name)
	assert.Equal(t, "America/Manaus", e.stores.Settings.Current().Timezone)
}

func TestSettingsLogoUpload(t *testing.T) {
	e := newEnv(t, nil)

	img := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = part.Write(pngBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/settings/logo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	url := decode[struct {
		LogoURL string `json:"logo_url"`
	}](t, w).LogoURL
	assert.Contains(t, url, "https://cdn.test/logos/logo-")
	assert.Equal(t, url, e.stores.Settings.Current().LogoURL)

	w = e.do(t, http.MethodPost, "/settings/logo", nil)
	assert.Equal(t, "logo_required", errorCode(t, w))
}

// ======================================================
// REPORTS & NOTIFICATIONS
// ======================================================

func TestReportsUseCompletedAppointments(t *testing.T) {
	e := newEnv(t, nil)
	done := e.book(t, "09:00", "09:45")
	e.book(t, "10:00", "10:45")
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPatch, "/appointments/"+done+"/status", gin.H{"status": "completed"}).Code)

	w := e.do(t, http.MethodGet, "/reports/revenue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rev := decode[revenueReport](t, w)
	assert.Equal(t, 80.0, rev.Total)
	assert.Equal(t, 2, rev.AppointmentsInPeriod)

	w = e.do(t, http.MethodGet, "/reports/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[struct {
		TodayAppointments []appointment.Appointment `json:"today_appointments"`
		MonthRevenue      float64                   `json:"month_revenue"`
	}](t, w)
	assert.Len(t, dash.TodayAppointments, 2)
	assert.Equal(t, 80.0, dash.MonthRevenue)
}

func TestNotificationsNewestFirst(t *testing.T) {
	e := newEnv(t, nil)
	e.do(t, http.MethodPost, "/suppliers", gin.H{"name": "Distribuidora"})

	got := decode[struct {
		Data []notify.Toast `json:"data"`
	}](t, e.do(t, http.MethodGet, "/notifications", nil))
	require.NotEmpty(t, got.Data)
	assert.Equal(t, "Fornecedor cadastrado", got.Data[0].Title)
}
