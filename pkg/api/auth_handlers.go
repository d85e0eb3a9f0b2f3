package api

import (
	"net/http"

	"driveshare/pkg/models"
)

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	Principal   interface{} `json:"principal"`
}

func (s *Server) RegisterHost(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !s.decode(w, r, &req) {
		return
	}

	host, err := s.svc.Auth().RegisterHost(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, host)
}

func (s *Server) LoginHost(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !s.decode(w, r, &req) {
		return
	}

	signed, host, err := s.svc.Auth().LoginHost(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		Principal:   host,
	})
}

func (s *Server) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !s.decode(w, r, &req) {
		return
	}

	client, err := s.svc.Auth().RegisterClient(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, client)
}

func (s *Server) LoginClient(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !s.decode(w, r, &req) {
		return
	}

	signed, client, err := s.svc.Auth().LoginClient(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		Principal:   client,
	})
}

// Logout is advisory: tokens are stateless and expire on their own, the
// caller is expected to discard its copy.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "successfully logged out"})
}

func (s *Server) HostMe(w http.ResponseWriter, r *http.Request) {
	host, err := s.svc.Auth().GetHost(r.Context(), principalID(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, host)
}

func (s *Server) ClientMe(w http.ResponseWriter, r *http.Request) {
	client, err := s.svc.Auth().GetClient(r.Context(), principalID(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, client)
}

func (s *Server) UpdateClientProfile(w http.ResponseWriter, r *http.Request) {
	var patch models.ClientProfilePatch
	if !s.decode(w, r, &patch) {
		return
	}

	client, err := s.svc.Client().UpdateProfile(r.Context(), principalID(r.Context()), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, client)
}
