package vault

// WebhookRequest is the inbound payload posted by the CRM workflow
// when a new client should be provisioned in the document vault.
type WebhookRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
