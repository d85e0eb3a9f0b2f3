package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"driveshare/pkg/apperr"
	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

// PaymentService manages host payout methods. Card numbers and CVCs never
// touch storage in plaintext; only bcrypt hashes and the last four digits of
// the card number are persisted.
type PaymentService interface {
	AddMpesa(ctx context.Context, hostID int64, req models.MpesaPaymentRequest) (*models.PaymentMethod, error)
	AddCard(ctx context.Context, hostID int64, req models.CardPaymentRequest) (*models.PaymentMethod, error)
	List(ctx context.Context, hostID int64) ([]*models.PaymentMethod, error)
}

type paymentService struct {
	payments   storage.IPaymentStorage
	bcryptCost int
	log        logger.ILogger
	now        func() time.Time
}

func NewPaymentService(stg storage.IStorage, bcryptCost int, log logger.ILogger) PaymentService {
	return &paymentService{
		payments:   stg.Payment(),
		bcryptCost: bcryptCost,
		log:        log,
		now:        time.Now,
	}
}

func (s *paymentService) AddMpesa(ctx context.Context, hostID int64, req models.MpesaPaymentRequest) (*models.PaymentMethod, error) {
	if n := len(req.MpesaNumber); n < 9 || n > 15 || !digitsRe.MatchString(req.MpesaNumber) {
		return nil, apperr.New(apperr.KindValidation, "mpesa_number must be 9-15 digits")
	}

	if req.IsDefault {
		if err := s.payments.ClearDefault(ctx, hostID); err != nil {
			return nil, err
		}
	}

	method := &models.PaymentMethod{
		HostID:      hostID,
		MethodType:  models.PaymentMpesa,
		MpesaNumber: &req.MpesaNumber,
		IsDefault:   req.IsDefault,
	}
	created, err := s.payments.Create(ctx, method)
	if err != nil {
		return nil, err
	}

	s.log.Info("mpesa payment method added", logger.Int64("host_id", hostID))
	return created, nil
}

func (s *paymentService) AddCard(ctx context.Context, hostID int64, req models.CardPaymentRequest) (*models.PaymentMethod, error) {
	methodType, err := s.validateCard(req)
	if err != nil {
		return nil, err
	}

	numberHash, err := s.hashSecret(req.CardNumber)
	if err != nil {
		return nil, err
	}
	cvcHash, err := s.hashSecret(req.CVC)
	if err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.payments.ClearDefault(ctx, hostID); err != nil {
			return nil, err
		}
	}

	lastFour := req.CardNumber[len(req.CardNumber)-4:]
	method := &models.PaymentMethod{
		HostID:         hostID,
		MethodType:     methodType,
		CardNumberHash: &numberHash,
		CardLastFour:   &lastFour,
		ExpiryMonth:    &req.ExpiryMonth,
		ExpiryYear:     &req.ExpiryYear,
		CVCHash:        &cvcHash,
		IsDefault:      req.IsDefault,
	}
	created, err := s.payments.Create(ctx, method)
	if err != nil {
		return nil, err
	}

	s.log.Info("card payment method added", logger.Int64("host_id", hostID), logger.String("card_type", req.CardType))
	return created, nil
}

func (s *paymentService) List(ctx context.Context, hostID int64) ([]*models.PaymentMethod, error) {
	return s.payments.ListByHost(ctx, hostID)
}

func (s *paymentService) validateCard(req models.CardPaymentRequest) (models.PaymentMethodType, error) {
	if len(req.CardNumber) != 16 || !digitsRe.MatchString(req.CardNumber) {
		return "", apperr.New(apperr.KindValidation, "card_number must be 16 digits")
	}

	var methodType models.PaymentMethodType
	switch req.CardType {
	case "visa":
		if req.CardNumber[0] != '4' {
			return "", apperr.New(apperr.KindValidation, "visa card numbers must start with 4")
		}
		methodType = models.PaymentVisa
	case "mastercard":
		if req.CardNumber[0] != '5' {
			return "", apperr.New(apperr.KindValidation, "mastercard numbers must start with 5")
		}
		methodType = models.PaymentMastercard
	default:
		return "", apperr.New(apperr.KindValidation, "card_type must be visa or mastercard")
	}

	if n := len(req.CVC); n < 3 || n > 4 || !digitsRe.MatchString(req.CVC) {
		return "", apperr.New(apperr.KindValidation, "cvc must be 3-4 digits")
	}
	if req.ExpiryMonth < 1 || req.ExpiryMonth > 12 {
		return "", apperr.New(apperr.KindValidation, "expiry_month must be in range [1, 12]")
	}

	now := s.now()
	if req.ExpiryYear < now.Year() ||
		(req.ExpiryYear == now.Year() && req.ExpiryMonth < int(now.Month())) {
		return "", apperr.New(apperr.KindValidation, "card has expired")
	}

	return methodType, nil
}

func (s *paymentService) hashSecret(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), s.bcryptCost)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to hash card secret", err)
	}
	return string(hashed), nil
}
