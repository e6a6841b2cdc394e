package http

import (
	"net/http"

	"docspot-odonto/internal/delivery/http/handler"
	"docspot-odonto/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	healthHandler      *handler.HealthHandler
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		healthHandler:      healthHandler,
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		corsMiddleware:     corsMiddleware,
	}
}

// Setup registers the full route table. The surface is unversioned on
// purpose: the frontend mockup calls these paths directly.
func (r *Router) Setup() *mux.Router {
	// Health
	r.router.HandleFunc("/", r.healthHandler.Root).Methods(http.MethodGet)
	r.router.HandleFunc("/test-db", r.healthHandler.TestDB).Methods(http.MethodGet)

	// Users
	r.router.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	r.router.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Appointments
	r.router.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	r.router.HandleFunc("/appointments", r.appointmentHandler.GetAppointments).Methods(http.MethodGet)
	r.router.HandleFunc("/appointments/{id}/reserve", r.appointmentHandler.ReserveAppointment).Methods(http.MethodPost)
	r.router.HandleFunc("/appointments/{id}", r.appointmentHandler.CancelAppointment).Methods(http.MethodDelete)
	r.router.HandleFunc("/doctors/{id}/appointments", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)
	r.router.HandleFunc("/patients/{id}/appointments", r.appointmentHandler.GetPatientAppointments).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
