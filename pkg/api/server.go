// Package api is the HTTP transport. Handlers decode and re-encode JSON and
// delegate all decisions to the service layer; authorization state never
// comes from the request body.
package api

import (
	"net/http"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/pkg/token"
	"driveshare/service"
)

type Server struct {
	svc    service.IServiceManager
	tokens *token.Issuer
	log    logger.ILogger
}

func NewServer(svc service.IServiceManager, tokens *token.Issuer, log logger.ILogger) *Server {
	return &Server{
		svc:    svc,
		tokens: tokens,
		log:    log,
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /host/auth/register", s.RegisterHost)
	mux.HandleFunc("POST /host/auth/login", s.LoginHost)
	mux.HandleFunc("POST /host/auth/logout", s.requireAuth(models.KindHost, s.Logout))
	mux.HandleFunc("GET /host/me", s.requireAuth(models.KindHost, s.HostMe))

	mux.HandleFunc("POST /client/auth/register", s.RegisterClient)
	mux.HandleFunc("POST /client/auth/login", s.LoginClient)
	mux.HandleFunc("POST /client/auth/logout", s.requireAuth(models.KindClient, s.Logout))
	mux.HandleFunc("GET /client/me", s.requireAuth(models.KindClient, s.ClientMe))
	mux.HandleFunc("PUT /client/profile", s.requireAuth(models.KindClient, s.UpdateClientProfile))

	mux.HandleFunc("POST /cars/basics", s.requireAuth(models.KindHost, s.CreateCarBasics))
	mux.HandleFunc("PUT /cars/{id}/specs", s.requireAuth(models.KindHost, s.UpdateCarSpecs))
	mux.HandleFunc("PUT /cars/{id}/pricing", s.requireAuth(models.KindHost, s.UpdateCarPricing))
	mux.HandleFunc("PUT /cars/{id}/location", s.requireAuth(models.KindHost, s.UpdateCarLocation))

	mux.HandleFunc("GET /cars/{id}", s.GetCar)
	mux.HandleFunc("GET /cars", s.ListCars)
	mux.HandleFunc("GET /host/cars", s.requireAuth(models.KindHost, s.ListHostCars))

	mux.HandleFunc("POST /host/payment-methods/mpesa", s.requireAuth(models.KindHost, s.AddMpesaPaymentMethod))
	mux.HandleFunc("POST /host/payment-methods/card", s.requireAuth(models.KindHost, s.AddCardPaymentMethod))
	mux.HandleFunc("GET /host/payment-methods", s.requireAuth(models.KindHost, s.ListPaymentMethods))

	mux.HandleFunc("GET /health", s.Health)

	return mux
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
