package service

import (
	"driveshare/pkg/logger"
	"driveshare/pkg/token"
	"driveshare/storage"
)

type IServiceManager interface {
	Auth() AuthService
	Car() CarService
	Client() ClientService
	Payment() PaymentService
}

type service struct {
	authService    AuthService
	carService     CarService
	clientService  ClientService
	paymentService PaymentService
}

func New(stg storage.IStorage, tokens *token.Issuer, bcryptCost int, log logger.ILogger) IServiceManager {
	return &service{
		authService:    NewAuthService(stg, tokens, bcryptCost, log),
		carService:     NewCarService(stg, log),
		clientService:  NewClientService(stg, log),
		paymentService: NewPaymentService(stg, bcryptCost, log),
	}
}

func (s *service) Auth() AuthService {
	return s.authService
}

func (s *service) Car() CarService {
	return s.carService
}

func (s *service) Client() ClientService {
	return s.clientService
}

func (s *service) Payment() PaymentService {
	return s.paymentService
}
