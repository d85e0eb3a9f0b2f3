package api

import (
	"net/http"
	"strconv"

	"driveshare/pkg/apperr"
	"driveshare/pkg/models"
)

func carID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.KindValidation, "invalid car id")
	}
	return id, nil
}

func (s *Server) CreateCarBasics(w http.ResponseWriter, r *http.Request) {
	var req models.CarBasics
	if !s.decode(w, r, &req) {
		return
	}

	car, err := s.svc.Car().CreateBasics(r.Context(), principalID(r.Context()), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, car)
}

func (s *Server) UpdateCarSpecs(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req models.CarSpecs
	if !s.decode(w, r, &req) {
		return
	}

	car, err := s.svc.Car().UpdateSpecs(r.Context(), principalID(r.Context()), id, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, car)
}

func (s *Server) UpdateCarPricing(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req models.CarPricing
	if !s.decode(w, r, &req) {
		return
	}

	car, err := s.svc.Car().UpdatePricing(r.Context(), principalID(r.Context()), id, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, car)
}

func (s *Server) UpdateCarLocation(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req models.CarLocation
	if !s.decode(w, r, &req) {
		return
	}

	car, err := s.svc.Car().UpdateLocation(r.Context(), principalID(r.Context()), id, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, car)
}

func (s *Server) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	car, err := s.svc.Car().Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, car)
}

// ListCars is the public listing: complete cars only, newest first.
func (s *Server) ListCars(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	cars, err := s.svc.Car().ListComplete(r.Context(), page, pageSize)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if cars == nil {
		cars = []*models.Car{}
	}
	s.writeJSON(w, http.StatusOK, cars)
}

// ListHostCars returns the authenticated host's cars at every stage,
// including incomplete drafts.
func (s *Server) ListHostCars(w http.ResponseWriter, r *http.Request) {
	cars, err := s.svc.Car().ListByHost(r.Context(), principalID(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if cars == nil {
		cars = []*models.Car{}
	}
	s.writeJSON(w, http.StatusOK, cars)
}
