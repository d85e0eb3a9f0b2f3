package service

import (
	"context"

	"driveshare/pkg/apperr"
	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

// ClientService covers renter-facing profile maintenance. Updates are
// partial: only fields present in the patch are written.
type ClientService interface {
	UpdateProfile(ctx context.Context, clientID int64, patch models.ClientProfilePatch) (*models.Client, error)
}

type clientService struct {
	clients storage.IClientStorage
	log     logger.ILogger
}

func NewClientService(stg storage.IStorage, log logger.ILogger) ClientService {
	return &clientService{
		clients: stg.Client(),
		log:     log,
	}
}

func (s *clientService) UpdateProfile(ctx context.Context, clientID int64, patch models.ClientProfilePatch) (*models.Client, error) {
	if patch.MobileNumber != nil {
		if err := validateMobileNumber(*patch.MobileNumber); err != nil {
			return nil, err
		}
	}
	if patch.IDNumber != nil {
		if err := validateIDNumber(*patch.IDNumber); err != nil {
			return nil, err
		}
	}

	client, err := s.clients.UpdateProfile(ctx, clientID, patch)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperr.New(apperr.KindNotFound, "client not found")
	}

	s.log.Info("client profile updated", logger.Int64("client_id", clientID))
	return client, nil
}
