package credential

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go-ghlsync/internal/config"
	"go-ghlsync/internal/connectors/ghl"
	"go-ghlsync/internal/connectors/smartvault"

	"go.uber.org/zap"
)

type CredentialService interface {
	// GHL OAuth
	GHLAuthURL() string
	ExchangeGHLCode(ctx context.Context, code string) (*GHLCredential, error)
	RefreshGHL(ctx context.Context) error
	ActiveGHL(ctx context.Context) (*GHLCredential, error)

	// SmartVault OAuth
	SmartVaultAuthURL() string
	ExchangeSmartVaultCode(ctx context.Context, code string) (*SmartVaultToken, error)
	RefreshSmartVault(ctx context.Context) (*SmartVaultToken, error)
	ActiveSmartVault(ctx context.Context) (*SmartVaultToken, error)
}

type CredentialServiceImpl struct {
	GHLRepo   GHLCredentialRepository
	VaultRepo SmartVaultTokenRepository
	Vault     *smartvault.Client
	Config    *config.Config
	Log       *zap.Logger
}

func NewCredentialService(ghlRepo GHLCredentialRepository, vaultRepo SmartVaultTokenRepository, cfg *config.Config, log *zap.Logger) CredentialService {
	return &CredentialServiceImpl{
		GHLRepo:   ghlRepo,
		VaultRepo: vaultRepo,
		Vault:     smartvault.NewClient(cfg.SmartVaultAPIBase),
		Config:    cfg,
		Log:       log,
	}
}

// GHLAuthURL builds the marketplace location-chooser URL the user is
// redirected to when connecting a GHL account.
func (s *CredentialServiceImpl) GHLAuthURL() string {
	return fmt.Sprintf("%s/oauth/chooselocation?response_type=code&redirect_uri=%s&client_id=%s&scope=%s",
		s.Config.GHLMarketplaceBase,
		url.QueryEscape(s.Config.GHLRedirectURI),
		url.QueryEscape(s.Config.GHLClientID),
		url.QueryEscape(s.Config.GHLScope),
	)
}

func (s *CredentialServiceImpl) ExchangeGHLCode(ctx context.Context, code string) (*GHLCredential, error) {
	tokens, err := ghl.ExchangeCode(ctx, s.Config.GHLAPIBase, s.Config.GHLClientID, s.Config.GHLClientSecret, s.Config.GHLRedirectURI, code)
	if err != nil {
		return nil, fmt.Errorf("ghl code exchange: %w", err)
	}

	cred := credentialFromTokens(tokens)
	if err := s.GHLRepo.UpsertByLocation(ctx, cred); err != nil {
		return nil, fmt.Errorf("store ghl credential: %w", err)
	}

	s.Log.Info("stored GHL credential", zap.String("locationId", cred.LocationID))
	return cred, nil
}

// RefreshGHL rotates the stored GHL token pair using the refresh token.
func (s *CredentialServiceImpl) RefreshGHL(ctx context.Context) error {
	cred, err := s.GHLRepo.First(ctx)
	if err != nil {
		return fmt.Errorf("no GHL credential stored: %w", err)
	}

	tokens, err := ghl.RefreshToken(ctx, s.Config.GHLAPIBase, s.Config.GHLClientID, s.Config.GHLClientSecret, cred.RefreshToken)
	if err != nil {
		return fmt.Errorf("ghl token refresh: %w", err)
	}

	refreshed := credentialFromTokens(tokens)
	if refreshed.LocationID == "" {
		refreshed.LocationID = cred.LocationID
	}
	if err := s.GHLRepo.UpsertByLocation(ctx, refreshed); err != nil {
		return fmt.Errorf("store refreshed ghl credential: %w", err)
	}

	s.Log.Info("refreshed GHL credential", zap.String("locationId", refreshed.LocationID))
	return nil
}

func (s *CredentialServiceImpl) ActiveGHL(ctx context.Context) (*GHLCredential, error) {
	return s.GHLRepo.First(ctx)
}

func (s *CredentialServiceImpl) SmartVaultAuthURL() string {
	return fmt.Sprintf("https://my.smartvault.com/users/secure/IntegratedApplications.aspx?client_id=%s&response_type=code&redirect_uri=%s",
		url.QueryEscape(s.Config.SmartVaultClientID),
		url.QueryEscape(s.Config.SmartVaultRedirectURI),
	)
}

func (s *CredentialServiceImpl) ExchangeSmartVaultCode(ctx context.Context, code string) (*SmartVaultToken, error) {
	token, err := s.Vault.ExchangeCode(ctx, s.Config.SmartVaultClientID, s.Config.SmartVaultClientSecret, code)
	if err != nil {
		return nil, fmt.Errorf("smartvault code exchange: %w", err)
	}
	return s.storeSmartVaultToken(ctx, token)
}

func (s *CredentialServiceImpl) RefreshSmartVault(ctx context.Context) (*SmartVaultToken, error) {
	stored, err := s.VaultRepo.First(ctx)
	if err != nil {
		return nil, fmt.Errorf("no SmartVault token stored: %w", err)
	}

	token, err := s.Vault.Refresh(ctx, s.Config.SmartVaultClientSecret, stored.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("smartvault token refresh: %w", err)
	}
	return s.storeSmartVaultToken(ctx, token)
}

func (s *CredentialServiceImpl) ActiveSmartVault(ctx context.Context) (*SmartVaultToken, error) {
	return s.VaultRepo.First(ctx)
}

func (s *CredentialServiceImpl) storeSmartVaultToken(ctx context.Context, token *smartvault.Token) (*SmartVaultToken, error) {
	now := time.Now()
	record := &SmartVaultToken{
		UserID:           token.ID,
		AccessToken:      token.AccessToken,
		RefreshToken:     token.RefreshToken,
		TokenType:        token.TokenType,
		ExpiresAt:        now.Add(time.Duration(token.ExpiresIn) * time.Second),
		RefreshExpiresAt: now.Add(time.Duration(token.RefreshTokenExpiresIn) * time.Second),
	}

	if err := s.VaultRepo.UpsertByUser(ctx, record); err != nil {
		return nil, fmt.Errorf("store smartvault token: %w", err)
	}

	s.Log.Info("stored SmartVault token", zap.String("userId", record.UserID))
	return record, nil
}

func credentialFromTokens(tokens *ghl.TokenResponse) *GHLCredential {
	return &GHLCredential{
		UserID:       tokens.UserID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		Scope:        tokens.Scope,
		UserType:     tokens.UserType,
		CompanyID:    tokens.CompanyID,
		LocationID:   tokens.LocationID,
	}
}
