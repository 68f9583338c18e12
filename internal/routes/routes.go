package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	"github.com/BruksfildServices01/barberpro/internal/config"
	"github.com/BruksfildServices01/barberpro/internal/handlers"
	"github.com/BruksfildServices01/barberpro/internal/infra/storage"
	infraRepo "github.com/BruksfildServices01/barberpro/internal/infra/repository"
	"github.com/BruksfildServices01/barberpro/internal/mailer"
	"github.com/BruksfildServices01/barberpro/internal/metrics"
	"github.com/BruksfildServices01/barberpro/internal/middleware"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/realtime"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barberpro/internal/usecase/appointment"
	"github.com/BruksfildServices01/barberpro/internal/validators"
)

// Deps reúne a infraestrutura montada em cmd/api. Photos, Metrics e
// Gatherer podem ser nil.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger
	Clock  timezone.Clock

	Hub           realtime.Hub
	Photos        storage.PhotoStorage
	Sender        mailer.Sender
	Confirmations ucAppointment.ConfirmationSender
	Audit         *audit.Dispatcher

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	// EmailCheck substitui a consulta DNS do cadastro (testes).
	EmailCheck validators.EmailDomainCheck
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins...))
	r.Use(middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, d.Clock, cfg.BookingWindowDays)

	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		availabilityUC,
		d.Hub,
		d.Confirmations,
		d.Audit,
		d.Metrics,
		d.Log,
	)

	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Clock, d.Audit)
	listUC := ucAppointment.NewListAppointments(appointmentRepo, d.Clock)
	listClientUC := ucAppointment.NewListClientAppointments(appointmentRepo, d.Clock)

	remindersUC := ucAppointment.NewSendReminders(
		appointmentRepo,
		d.Sender,
		d.Clock,
		d.Audit,
		d.Metrics,
		d.Log,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg, d.Log, d.EmailCheck)
	meHandler := handlers.NewMeHandler(d.DB)
	catalogHandler := handlers.NewCatalogHandler(appointmentRepo, availabilityUC, d.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		d.DB,
		bookUC,
		cancelUC,
		listUC,
		listClientUC,
		d.Log,
	)

	barberAdminHandler := handlers.NewBarberAdminHandler(d.DB, d.Photos, d.Audit, d.Log)
	serviceAdminHandler := handlers.NewServiceAdminHandler(d.DB, d.Audit, d.Log)
	notificationHandler := handlers.NewNotificationHandler(d.DB, d.Hub, d.Log)
	reminderHandler := handlers.NewReminderHandler(remindersUC, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/admin/register", authHandler.RegisterAdmin)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🌐 CATÁLOGO (público)
		// ------------------------------
		api.GET("/services", catalogHandler.ListServices)
		api.GET("/barbers", catalogHandler.ListBarbers)
		api.GET("/barbers/:id/availability", catalogHandler.Availability)

		// ------------------------------
		// 🔐 AUTENTICADO
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			client := secured.Group("/")
			client.Use(middleware.RequireRole(models.RoleClient))
			{
				client.POST("/appointments", appointmentHandler.Book)
				client.GET("/me/appointments", appointmentHandler.ListMine)
			}

			// ------------------------------
			// 💈 PAINEL DO BARBEIRO
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleBarber))
			{
				admin.GET("/appointments", appointmentHandler.List)
				admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

				admin.GET("/barbers", barberAdminHandler.List)
				admin.POST("/barbers", barberAdminHandler.Create)
				admin.PATCH("/barbers/:id", barberAdminHandler.Update)
				admin.DELETE("/barbers/:id", barberAdminHandler.Delete)
				admin.POST("/barbers/:id/photo", barberAdminHandler.UploadPhoto)

				admin.GET("/services", serviceAdminHandler.List)
				admin.POST("/services", serviceAdminHandler.Create)
				admin.PATCH("/services/:id", serviceAdminHandler.Update)
				admin.DELETE("/services/:id", serviceAdminHandler.Delete)

				admin.GET("/notifications", notificationHandler.List)
				admin.GET("/notifications/stream", notificationHandler.Stream)
				admin.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
				admin.POST("/notifications/read-all", notificationHandler.MarkAllRead)

				admin.POST("/reminders/run", reminderHandler.Run)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
