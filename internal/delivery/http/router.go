package http

import (
	"net/http"

	"go-hospital-scheduling/internal/delivery/http/handler"
	"go-hospital-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	availabilityHandler *handler.AvailabilityHandler
	scheduleHandler     *handler.ScheduleHandler
	templateHandler     *handler.TemplateHandler
	exceptionHandler    *handler.ExceptionHandler
	conflictHandler     *handler.ConflictHandler
	calendarSyncHandler *handler.CalendarSyncHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	availabilityHandler *handler.AvailabilityHandler,
	scheduleHandler *handler.ScheduleHandler,
	templateHandler *handler.TemplateHandler,
	exceptionHandler *handler.ExceptionHandler,
	conflictHandler *handler.ConflictHandler,
	calendarSyncHandler *handler.CalendarSyncHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		availabilityHandler: availabilityHandler,
		scheduleHandler:     scheduleHandler,
		templateHandler:     templateHandler,
		exceptionHandler:    exceptionHandler,
		conflictHandler:     conflictHandler,
		calendarSyncHandler: calendarSyncHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Doctor schedule routes (protected)
	doctors := api.PathPrefix("/doctors/{doctorId}").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)

	// Availability resolution
	doctors.HandleFunc("/availability", r.availabilityHandler.GetAvailability).Methods(http.MethodGet)

	// Working-day schedule
	doctors.HandleFunc("/schedule", r.scheduleHandler.GetSchedule).Methods(http.MethodGet)
	doctors.HandleFunc("/schedule", r.scheduleHandler.ReplaceSchedule).Methods(http.MethodPut)
	doctors.HandleFunc("/schedule/apply-template", r.templateHandler.ApplyTemplate).Methods(http.MethodPost)

	// Schedule templates
	doctors.HandleFunc("/templates", r.templateHandler.CreateTemplate).Methods(http.MethodPost)
	doctors.HandleFunc("/templates", r.templateHandler.GetTemplates).Methods(http.MethodGet)
	doctors.HandleFunc("/templates/{templateId}", r.templateHandler.DeleteTemplate).Methods(http.MethodDelete)

	// Schedule exceptions
	doctors.HandleFunc("/exceptions", r.exceptionHandler.CreateException).Methods(http.MethodPost)
	doctors.HandleFunc("/exceptions", r.exceptionHandler.GetExceptions).Methods(http.MethodGet)
	doctors.HandleFunc("/exceptions/{exceptionId}", r.exceptionHandler.DeleteException).Methods(http.MethodDelete)

	// Conflict scanning and listing
	doctors.HandleFunc("/conflicts/scan", r.conflictHandler.ScanConflicts).Methods(http.MethodPost)
	doctors.HandleFunc("/conflicts", r.conflictHandler.ListConflicts).Methods(http.MethodGet)

	// Calendar integrations
	doctors.HandleFunc("/integrations", r.calendarSyncHandler.GetIntegrations).Methods(http.MethodGet)
	doctors.HandleFunc("/calendar-sync/{integrationId}", r.calendarSyncHandler.Sync).Methods(http.MethodPost)

	// Conflict resolution (protected, addressed by conflict id)
	conflicts := api.PathPrefix("/conflicts/{conflictId}").Subrouter()
	conflicts.Use(r.authMiddleware.Authenticate)
	conflicts.HandleFunc("/auto-fix", r.conflictHandler.AutoFixConflict).Methods(http.MethodPost)
	conflicts.HandleFunc("/resolve", r.conflictHandler.ResolveConflict).Methods(http.MethodPost)
	conflicts.HandleFunc("/ignore", r.conflictHandler.IgnoreConflict).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
