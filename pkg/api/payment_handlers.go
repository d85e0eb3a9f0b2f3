package api

import (
	"net/http"

	"driveshare/pkg/models"
)

func (s *Server) AddMpesaPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req models.MpesaPaymentRequest
	if !s.decode(w, r, &req) {
		return
	}

	method, err := s.svc.Payment().AddMpesa(r.Context(), principalID(r.Context()), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, method)
}

func (s *Server) AddCardPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req models.CardPaymentRequest
	if !s.decode(w, r, &req) {
		return
	}

	method, err := s.svc.Payment().AddCard(r.Context(), principalID(r.Context()), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, method)
}

func (s *Server) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := s.svc.Payment().List(r.Context(), principalID(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if methods == nil {
		methods = []*models.PaymentMethod{}
	}
	s.writeJSON(w, http.StatusOK, methods)
}
