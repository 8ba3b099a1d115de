package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"fleetbook/internal/api"
	"fleetbook/internal/approval"
	"fleetbook/internal/audit"
	"fleetbook/internal/auth"
	"fleetbook/internal/booking"
	"fleetbook/internal/driver"
	"fleetbook/internal/fuellog"
	"fleetbook/internal/notify"
	"fleetbook/internal/servicelog"
	"fleetbook/internal/usagelog"
	"fleetbook/internal/user"
	"fleetbook/internal/vehicle"
	"fleetbook/internal/workflow"
	"fleetbook/pkg/config"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
	Log *zap.Logger
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	usersRepo := user.NewRepository(deps.DB)
	vehiclesRepo := vehicle.NewRepository(deps.DB)
	driversRepo := driver.NewRepository(deps.DB)
	bookingsRepo := booking.NewRepository(deps.DB)
	approvalsRepo := approval.NewRepository(deps.DB)
	auditRepo := audit.NewRepository(deps.DB)

	wf := &workflow.Workflow{
		DB:        deps.DB,
		Bookings:  bookingsRepo,
		Approvals: approvalsRepo,
		Users:     usersRepo,
		Notifier:  notify.LogSink{Log: deps.Log},
		Log:       deps.Log,
	}

	authHandlers := auth.Handlers{Cfg: deps.Cfg, Users: usersRepo, Log: deps.Log}
	vehicleHandlers := vehicle.Handlers{Repo: vehiclesRepo}
	driverHandlers := driver.Handlers{Repo: driversRepo}
	workflowHandlers := workflow.Handlers{Workflow: wf}
	fuelLogHandlers := fuellog.Handlers{Repo: fuellog.NewRepository(deps.DB)}
	serviceLogHandlers := servicelog.Handlers{Repo: servicelog.NewRepository(deps.DB)}
	usageLogHandlers := usagelog.Handlers{Repo: usagelog.NewRepository(deps.DB)}
	auditHandlers := audit.Handlers{Repo: auditRepo}

	// v1
	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandlers.Login)

		r.Group(func(r chi.Router) {
			r.Use(api.SessionAuth(deps.Cfg, usersRepo))

			// Approver pickers for the booking form
			r.Get("/users", workflowHandlers.ListApprovers)

			// Fleet directory
			r.Get("/vehicles", vehicleHandlers.List)
			r.Post("/vehicles", vehicleHandlers.Create)
			r.Get("/vehicles/{id}", vehicleHandlers.Get)
			r.Put("/vehicles/{id}", vehicleHandlers.Update)
			r.Delete("/vehicles/{id}", vehicleHandlers.Delete)
			r.Patch("/vehicles/{id}/status", vehicleHandlers.SetStatus)
			r.Get("/vehicles/{id}/fuel-logs", fuelLogHandlers.List)
			r.Post("/vehicles/{id}/fuel-logs", fuelLogHandlers.Create)
			r.Delete("/vehicles/{id}/fuel-logs/{logId}", fuelLogHandlers.Delete)
			r.Get("/vehicles/{id}/service-logs", serviceLogHandlers.List)
			r.Post("/vehicles/{id}/service-logs", serviceLogHandlers.Create)
			r.Delete("/vehicles/{id}/service-logs/{logId}", serviceLogHandlers.Delete)

			r.Get("/drivers", driverHandlers.List)
			r.Post("/drivers", driverHandlers.Create)
			r.Get("/drivers/{id}", driverHandlers.Get)
			r.Put("/drivers/{id}", driverHandlers.Update)
			r.Delete("/drivers/{id}", driverHandlers.Delete)

			// Bookings and the two-level approval workflow
			r.Post("/bookings", workflowHandlers.CreateBooking)
			r.Get("/bookings", workflowHandlers.ListBookings)
			r.Get("/bookings/{id}", workflowHandlers.GetBooking)
			r.Post("/bookings/{id}/cancel", workflowHandlers.CancelBooking)
			r.Get("/bookings/{id}/usage-log", usageLogHandlers.Get)
			r.Post("/bookings/{id}/usage-log", usageLogHandlers.Create)

			r.Get("/approvals/pending", workflowHandlers.ListPendingApprovals)
			r.Post("/approvals/{id}/approve", workflowHandlers.Approve)
			r.Post("/approvals/{id}/reject", workflowHandlers.Reject)

			// Admin activity feed
			r.Get("/activity", auditHandlers.ListRecent)
		})
	})

	return r
}
