package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/config"
	"github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/handlers"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/notify"
	"github.com/BruksfildServices01/salon-manager/internal/permission"
	"github.com/BruksfildServices01/salon-manager/internal/storage"
	"github.com/BruksfildServices01/salon-manager/internal/store"
	ucAppointment "github.com/BruksfildServices01/salon-manager/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

// Deps are the singletons the HTTP layer is built from.
type Deps struct {
	Config        *config.Config
	Stores        *store.Set
	Users         user.Repository
	Storage       storage.Storage
	Notifications *notify.Ring
	Logger        *zap.Logger

	// optional
	Checkout handlers.CheckoutLinker
	Resolver validators.Resolver
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	stores := d.Stores

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		stores.Appointments,
		stores.Clients,
		stores.Professionals,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		stores.Appointments,
		stores.Clients,
		stores.Locker,
		d.Logger,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		stores.Appointments,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Users, stores.Settings, d.Config, d.Resolver, d.Logger)
	userHandler := handlers.NewUserHandler(authHandler)

	appointmentHandler := handlers.NewAppointmentHandler(
		stores,
		createAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		d.Checkout,
	)
	clientHandler := handlers.NewClientHandler(stores.Clients)
	professionalHandler := handlers.NewProfessionalHandler(stores, d.Config.Timezone)
	stockHandler := handlers.NewStockHandler(stores)
	supplierHandler := handlers.NewSupplierHandler(stores.Suppliers)
	settingsHandler := handlers.NewSettingsHandler(stores.Settings, d.Storage, d.Config.StorageBucket, d.Logger)
	reportHandler := handlers.NewReportHandler(stores, d.Config.Timezone)
	notificationHandler := handlers.NewNotificationHandler(d.Notifications)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", authHandler.Me)
			secured.GET("/notifications", notificationHandler.List)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			appointments := secured.Group("/appointments")
			{
				view, create, edit, del := guards(permission.ModuleAppointments)
				appointments.GET("", view, appointmentHandler.List)
				appointments.GET("/:id", view, appointmentHandler.Get)
				appointments.POST("", create, appointmentHandler.Create)
				appointments.PATCH("/:id", edit, appointmentHandler.Update)
				appointments.PATCH("/:id/status", edit, appointmentHandler.UpdateStatus)
				appointments.PATCH("/:id/complete", edit, appointmentHandler.Complete)
				appointments.PATCH("/:id/cancel", edit, appointmentHandler.Cancel)
				appointments.POST("/:id/checkout", edit, appointmentHandler.Checkout)
				appointments.DELETE("/:id", del, appointmentHandler.Delete)
			}

			// ------------------------------
			// CLIENTS
			// ------------------------------
			clients := secured.Group("/clients")
			{
				view, create, edit, del := guards(permission.ModuleClients)
				clients.GET("", view, clientHandler.List)
				clients.GET("/:id", view, clientHandler.Get)
				clients.POST("", create, clientHandler.Create)
				clients.PATCH("/:id", edit, clientHandler.Update)
				clients.DELETE("/:id", del, clientHandler.Delete)
			}

			// ------------------------------
			// PROFESSIONALS
			// ------------------------------
			{
				view, create, edit, del := guards(permission.ModuleProfessionals)

				professionals := secured.Group("/professionals")
				professionals.GET("", view, professionalHandler.List)
				professionals.GET("/:id", view, professionalHandler.Get)
				professionals.POST("", create, professionalHandler.Create)
				professionals.PATCH("/:id", edit, professionalHandler.Update)
				professionals.POST("/:id/history", edit, professionalHandler.AddHistory)
				professionals.DELETE("/:id", del, professionalHandler.Delete)

				specialties := secured.Group("/specialties")
				specialties.GET("", view, professionalHandler.ListSpecialties)
				specialties.POST("", create, professionalHandler.CreateSpecialty)
				specialties.PATCH("/:id", edit, professionalHandler.UpdateSpecialty)
				specialties.DELETE("/:id", del, professionalHandler.DeleteSpecialty)
			}

			// ------------------------------
			// STOCK
			// ------------------------------
			products := secured.Group("/products")
			{
				view, create, edit, del := guards(permission.ModuleStock)
				products.GET("", view, stockHandler.ListProducts)
				products.GET("/:id", view, stockHandler.GetProduct)
				products.GET("/:id/movements", view, stockHandler.ListMovements)
				products.POST("", create, stockHandler.CreateProduct)
				products.POST("/:id/movements", edit, stockHandler.RegisterMovement)
				products.PATCH("/:id", edit, stockHandler.UpdateProduct)
				products.DELETE("/:id", del, stockHandler.DeleteProduct)
			}

			suppliers := secured.Group("/suppliers")
			{
				view, create, edit, del := guards(permission.ModuleSuppliers)
				suppliers.GET("", view, supplierHandler.List)
				suppliers.POST("", create, supplierHandler.Create)
				suppliers.PATCH("/:id", edit, supplierHandler.Update)
				suppliers.DELETE("/:id", del, supplierHandler.Delete)
			}

			// ------------------------------
			// REPORTS
			// ------------------------------
			reports := secured.Group("/reports")
			reports.Use(middleware.RequirePermission(permission.ModuleReports, permission.ActionView))
			{
				reports.GET("/dashboard", reportHandler.Dashboard)
				reports.GET("/revenue", reportHandler.Revenue)
				reports.GET("/payouts", reportHandler.Payouts)
				reports.GET("/clients", reportHandler.Clients)
				reports.GET("/stock", reportHandler.Stock)
			}

			// ------------------------------
			// SETTINGS & USERS
			// ------------------------------
			{
				view, create, edit, _ := guards(permission.ModuleSettings)

				secured.GET("/settings", view, settingsHandler.Get)
				secured.PATCH("/settings", edit, settingsHandler.Update)
				secured.POST("/settings/logo", edit, settingsHandler.UploadLogo)

				secured.GET("/users", view, userHandler.List)
				secured.POST("/users", create, userHandler.Create)
				secured.PATCH("/users/:id/permissions", edit, userHandler.UpdatePermissions)
			}
		}
	}
}

// guards returns the view, create, edit and delete checks for a module.
func guards(m permission.Module) (gin.HandlerFunc, gin.HandlerFunc, gin.HandlerFunc, gin.HandlerFunc) {
	return middleware.RequirePermission(m, permission.ActionView),
		middleware.RequirePermission(m, permission.ActionCreate),
		middleware.RequirePermission(m, permission.ActionEdit),
		middleware.RequirePermission(m, permission.ActionDelete)
}
