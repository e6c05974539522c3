package service

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/retailops/pricing-api/internal/models"
	"github.com/retailops/pricing-api/internal/repository"
	"github.com/retailops/pricing-api/internal/utils"
)

// ClientService manages API consumer registrations.
type ClientService struct {
	clientRepo *repository.ClientRepository
}

// NewClientService constructs a ClientService.
func NewClientService(clientRepo *repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClient registers a new API consumer and generates its key pair.
func (s *ClientService) CreateClient(name string, ipWhitelist []string) (*models.Client, error) {
	apiKey, err := utils.GenerateLiveKey()
	if err != nil {
		return nil, err
	}
	sandboxKey, err := utils.GenerateSandboxKey()
	if err != nil {
		return nil, err
	}

	client := &models.Client{
		ClientID:    uuid.New().String(),
		Name:        name,
		APIKey:      apiKey,
		SandboxKey:  sandboxKey,
		IPWhitelist: ipWhitelist,
		IsActive:    true,
	}
	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// ListClients retrieves all registered clients.
func (s *ClientService) ListClients() ([]*models.Client, error) {
	return s.clientRepo.List()
}

// GetClient returns a client by numeric id.
func (s *ClientService) GetClient(id int) (*models.Client, error) {
	c, err := s.clientRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrInvalidClient
		}
		return nil, err
	}
	return c, nil
}

// UpdateClient updates a client's name, whitelist, and active flag.
func (s *ClientService) UpdateClient(client *models.Client) error {
	if err := s.clientRepo.Update(client); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrInvalidClient
		}
		return err
	}
	return nil
}

// RegenerateKeys rotates both API keys for a client.
func (s *ClientService) RegenerateKeys(id int) (*models.Client, error) {
	client, err := s.GetClient(id)
	if err != nil {
		return nil, err
	}

	if client.APIKey, err = utils.GenerateLiveKey(); err != nil {
		return nil, err
	}
	if client.SandboxKey, err = utils.GenerateSandboxKey(); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}
