package http

import (
	"net/http"

	"go-clinic-scheduling/internal/delivery/http/handler"
	"go-clinic-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	scheduleHandler      *handler.ScheduleHandler
	slotHandler          *handler.SlotHandler
	regenerationHandler  *handler.RegenerationHandler
	appointmentHandler   *handler.AppointmentHandler
	queueHandler         *handler.QueueHandler
	doctorCheckinHandler *handler.DoctorCheckinHandler
	auditLogHandler      *handler.AuditLogHandler
	publicHandler        *handler.PublicHandler
	authMiddleware       *middleware.AuthMiddleware
	publicRateLimit      *middleware.RateLimitMiddleware
	loggingMiddleware    *middleware.LoggingMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	scheduleHandler *handler.ScheduleHandler,
	slotHandler *handler.SlotHandler,
	regenerationHandler *handler.RegenerationHandler,
	appointmentHandler *handler.AppointmentHandler,
	queueHandler *handler.QueueHandler,
	doctorCheckinHandler *handler.DoctorCheckinHandler,
	auditLogHandler *handler.AuditLogHandler,
	publicHandler *handler.PublicHandler,
	authMiddleware *middleware.AuthMiddleware,
	publicRateLimit *middleware.RateLimitMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		scheduleHandler:      scheduleHandler,
		slotHandler:          slotHandler,
		regenerationHandler:  regenerationHandler,
		appointmentHandler:   appointmentHandler,
		queueHandler:         queueHandler,
		doctorCheckinHandler: doctorCheckinHandler,
		auditLogHandler:      auditLogHandler,
		publicHandler:        publicHandler,
		authMiddleware:       authMiddleware,
		publicRateLimit:      publicRateLimit,
		loggingMiddleware:    loggingMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public token links (no auth, rate limited)
	public := api.PathPrefix("/public").Subrouter()
	public.Use(r.publicRateLimit.Handle)
	public.HandleFunc("/appointments/{token}", r.publicHandler.GetAppointment).Methods(http.MethodGet)
	public.HandleFunc("/appointments/{token}/cancel", r.publicHandler.CancelAppointment).Methods(http.MethodPost)
	public.HandleFunc("/appointments/{token}/reschedule", r.publicHandler.RescheduleAppointment).Methods(http.MethodPost)
	public.HandleFunc("/queue/{token}", r.publicHandler.GetQueueEntry).Methods(http.MethodGet)
	public.HandleFunc("/queue/{token}/cancel", r.publicHandler.CancelQueueEntry).Methods(http.MethodPost)

	// Per-doctor routes (protected, scoped to the caller's visible doctors)
	doctors := api.PathPrefix("/doctors/{doctorId}").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.Use(middleware.RequireDoctorScope)

	doctors.HandleFunc("/weekly-schedule", r.scheduleHandler.GetWeeklySchedule).Methods(http.MethodGet)
	doctors.HandleFunc("/weekly-schedule", r.scheduleHandler.SaveWeeklySchedule).Methods(http.MethodPut)
	doctors.HandleFunc("/slot-duration", r.scheduleHandler.UpdateSlotDuration).Methods(http.MethodPut)
	doctors.HandleFunc("/time-off", r.scheduleHandler.CreateTimeOff).Methods(http.MethodPost)
	doctors.HandleFunc("/time-off", r.scheduleHandler.ListTimeOff).Methods(http.MethodGet)
	doctors.HandleFunc("/time-off/{id}", r.scheduleHandler.ReviewTimeOff).Methods(http.MethodPatch)
	doctors.HandleFunc("/time-off/{id}", r.scheduleHandler.DeleteTimeOff).Methods(http.MethodDelete)

	doctors.HandleFunc("/slots/generate", r.slotHandler.GenerateSlots).Methods(http.MethodPost)
	doctors.HandleFunc("/slots", r.slotHandler.ListSlotsForDate).Methods(http.MethodGet)
	doctors.HandleFunc("/conflicts", r.regenerationHandler.AnalyzeConflicts).Methods(http.MethodPost)
	doctors.HandleFunc("/regenerate", r.regenerationHandler.Regenerate).Methods(http.MethodPost)

	doctors.HandleFunc("/queue", r.queueHandler.ListQueue).Methods(http.MethodGet)
	doctors.HandleFunc("/checkin", r.doctorCheckinHandler.CheckIn).Methods(http.MethodPost)
	doctors.HandleFunc("/checkin", r.doctorCheckinHandler.GetStatus).Methods(http.MethodGet)
	doctors.HandleFunc("/checkout", r.doctorCheckinHandler.CheckOut).Methods(http.MethodPost)

	// Resource routes (protected, scope checked against the loaded record)
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/slots/{id}/block", r.slotHandler.BlockSlot).Methods(http.MethodPatch)
	protected.HandleFunc("/slots/{id}/unblock", r.slotHandler.UnblockSlot).Methods(http.MethodPatch)

	protected.HandleFunc("/appointments", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/no-show", r.queueHandler.MarkNoShow).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/check-in", r.queueHandler.CheckIn).Methods(http.MethodPost)

	protected.HandleFunc("/queue/walk-in", r.queueHandler.AddWalkIn).Methods(http.MethodPost)
	protected.HandleFunc("/queue/{id}/status", r.queueHandler.UpdateStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/queue/{id}/priority", r.queueHandler.UpdatePriority).Methods(http.MethodPatch)
	protected.HandleFunc("/queue/{id}/move-to-top", r.queueHandler.MoveToTop).Methods(http.MethodPost)
	protected.HandleFunc("/queue/{id}", r.queueHandler.Remove).Methods(http.MethodDelete)

	protected.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	protected.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
