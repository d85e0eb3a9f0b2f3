package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"driveshare/pkg/apperr"
	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/pkg/token"
	"driveshare/storage"
)

// AuthService owns the identity lifecycle of both principal kinds. Host and
// client emails are independent namespaces; registration only checks the
// table of its own kind.
type AuthService interface {
	RegisterHost(ctx context.Context, req models.RegisterRequest) (*models.Host, error)
	LoginHost(ctx context.Context, req models.LoginRequest) (string, *models.Host, error)
	GetHost(ctx context.Context, id int64) (*models.Host, error)

	RegisterClient(ctx context.Context, req models.RegisterRequest) (*models.Client, error)
	LoginClient(ctx context.Context, req models.LoginRequest) (string, *models.Client, error)
	GetClient(ctx context.Context, id int64) (*models.Client, error)
}

type authService struct {
	hosts      storage.IHostStorage
	clients    storage.IClientStorage
	tokens     *token.Issuer
	bcryptCost int
	log        logger.ILogger
}

func NewAuthService(stg storage.IStorage, tokens *token.Issuer, bcryptCost int, log logger.ILogger) AuthService {
	return &authService{
		hosts:      stg.Host(),
		clients:    stg.Client(),
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

func (s *authService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}
	return string(hashed), nil
}

func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *authService) RegisterHost(ctx context.Context, req models.RegisterRequest) (*models.Host, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	existing, err := s.hosts.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, "email already registered")
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	host, err := s.hosts.Create(ctx, req.FullName, req.Email, hash)
	if err != nil {
		return nil, err
	}

	s.log.Info("host registered", logger.Int64("host_id", host.ID))
	return host, nil
}

func (s *authService) LoginHost(ctx context.Context, req models.LoginRequest) (string, *models.Host, error) {
	host, err := s.hosts.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if host == nil || !verifyPassword(host.PasswordHash, req.Password) {
		return "", nil, apperr.New(apperr.KindAuth, "incorrect email or password")
	}

	signed, err := s.tokens.Issue(host.ID, models.KindHost)
	if err != nil {
		return "", nil, err
	}
	return signed, host, nil
}

func (s *authService) GetHost(ctx context.Context, id int64) (*models.Host, error) {
	host, err := s.hosts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, apperr.New(apperr.KindAuth, "host not found")
	}
	return host, nil
}

func (s *authService) RegisterClient(ctx context.Context, req models.RegisterRequest) (*models.Client, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	existing, err := s.clients.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, "email already registered")
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.Create(ctx, req.FullName, req.Email, hash)
	if err != nil {
		return nil, err
	}

	s.log.Info("client registered", logger.Int64("client_id", client.ID))
	return client, nil
}

func (s *authService) LoginClient(ctx context.Context, req models.LoginRequest) (string, *models.Client, error) {
	client, err := s.clients.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if client == nil || !verifyPassword(client.PasswordHash, req.Password) {
		return "", nil, apperr.New(apperr.KindAuth, "incorrect email or password")
	}

	signed, err := s.tokens.Issue(client.ID, models.KindClient)
	if err != nil {
		return "", nil, err
	}
	return signed, client, nil
}

func (s *authService) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperr.New(apperr.KindAuth, "client not found")
	}
	return client, nil
}
