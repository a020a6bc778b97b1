package vault

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go-ghlsync/internal/config"
	"go-ghlsync/internal/connectors/smartvault"
	"go-ghlsync/internal/features/credential"

	"go.uber.org/zap"
)

type VaultService interface {
	CreateClient(ctx context.Context, req WebhookRequest) (map[string]any, error)
}

type VaultServiceImpl struct {
	Credentials credential.CredentialService
	Config      *config.Config
	Log         *zap.Logger
}

func NewVaultService(credentials credential.CredentialService, cfg *config.Config, log *zap.Logger) VaultService {
	return &VaultServiceImpl{
		Credentials: credentials,
		Config:      cfg,
		Log:         log,
	}
}

// CreateClient provisions an individual firm client in SmartVault from
// the webhook payload. First and last name are required; email and
// phone are attached when present.
func (s *VaultServiceImpl) CreateClient(ctx context.Context, req WebhookRequest) (map[string]any, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("first_name and last_name are required")
	}

	token, err := s.Credentials.ActiveSmartVault(ctx)
	if err != nil {
		return nil, fmt.Errorf("no active SmartVault token: %w", err)
	}

	client := smartvault.NewClient(s.Config.SmartVaultAPIBase)

	accountID := s.Config.SmartVaultAccountID
	if accountID == "" {
		accountID, err = client.FirmAccountID(ctx, token.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("could not resolve firm account: %w", err)
		}
	}

	entity := smartvault.NewIndividualClient(buildClient(req, firstName, lastName))

	result, err := client.CreateFirmClient(ctx, token.AccessToken, accountID, entity)
	if err != nil {
		return nil, err
	}

	s.Log.Info("created vault client",
		zap.String("firstName", firstName),
		zap.String("lastName", lastName))
	return result, nil
}

func buildClient(req WebhookRequest, firstName, lastName string) smartvault.AccountingClient {
	person := smartvault.Person{
		Names: []smartvault.PersonName{{
			FirstName: firstName,
			LastName:  lastName,
		}},
		EmailAddresses: []smartvault.EmailAddress{},
		PhoneNumbers:   []smartvault.PhoneNumber{},
	}

	// The client id mirrors the upstream workflow convention: names
	// concatenated with the email length as a disambiguator.
	clientID := firstName + lastName
	if email := strings.TrimSpace(req.Email); email != "" {
		person.EmailAddresses = append(person.EmailAddresses, smartvault.EmailAddress{Address: email})
		clientID += strconv.Itoa(len(email))
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		person.PhoneNumbers = append(person.PhoneNumbers, smartvault.PhoneNumber{Number: phone})
	}

	return smartvault.AccountingClient{
		Persons:  []smartvault.Person{person},
		ClientID: clientID,
	}
}
