package credential

import (
	"fmt"

	"go-ghlsync/internal/config"

	"github.com/gofiber/fiber/v2"
)

type CredentialController struct {
	Service CredentialService
	Config  *config.Config
}

func NewCredentialController(service CredentialService, cfg *config.Config) *CredentialController {
	return &CredentialController{
		Service: service,
		Config:  cfg,
	}
}

// GHLConnect redirects the browser to the GHL marketplace consent page
func (ctrl *CredentialController) GHLConnect(c *fiber.Ctx) error {
	return c.Redirect(ctrl.Service.GHLAuthURL(), fiber.StatusFound)
}

// GHLCallback receives the authorization code and forwards it to the token endpoint
func (ctrl *CredentialController) GHLCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Authorization code not received from OAuth",
		})
	}
	return c.Redirect(fmt.Sprintf("%s/accounts/auth/tokens?code=%s", ctrl.Config.BaseURI, code), fiber.StatusFound)
}

// GHLTokens exchanges the authorization code and stores the credential
func (ctrl *CredentialController) GHLTokens(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Authorization code not found",
		})
	}

	cred, err := ctrl.Service.ExchangeGHLCode(c.Context(), code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":      "Authentication successful",
		"location_id":  cred.LocationID,
		"token_stored": true,
	})
}

// SmartVaultConnect redirects the browser to the SmartVault consent page
func (ctrl *CredentialController) SmartVaultConnect(c *fiber.Ctx) error {
	return c.Redirect(ctrl.Service.SmartVaultAuthURL(), fiber.StatusFound)
}

// SmartVaultCallback receives the authorization code and forwards it to the auth endpoint
func (ctrl *CredentialController) SmartVaultCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Authorization code not found",
		})
	}
	return c.Redirect(fmt.Sprintf("%s/accounts/smartvault/auth?code=%s", ctrl.Config.BaseURI, code), fiber.StatusFound)
}

// SmartVaultAuth exchanges the authorization code and stores the token
func (ctrl *CredentialController) SmartVaultAuth(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		var body struct {
			Code string `json:"code"`
		}
		if err := c.BodyParser(&body); err == nil {
			code = body.Code
		}
	}
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Code is required",
		})
	}

	token, err := ctrl.Service.ExchangeSmartVaultCode(c.Context(), code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(token)
}

// SmartVaultRefresh rotates the stored SmartVault token pair
func (ctrl *CredentialController) SmartVaultRefresh(c *fiber.Ctx) error {
	token, err := ctrl.Service.RefreshSmartVault(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(token)
}
