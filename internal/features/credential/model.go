package credential

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GHLCredential stores the OAuth tokens for one GHL location. The sync
// core reads it but never mutates it; refresh is the scheduler's job.
type GHLCredential struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       string             `json:"user_id" bson:"user_id"`
	AccessToken  string             `json:"access_token" bson:"access_token"`
	RefreshToken string             `json:"refresh_token" bson:"refresh_token"`
	ExpiresIn    int                `json:"expires_in" bson:"expires_in"`
	Scope        string             `json:"scope,omitempty" bson:"scope,omitempty"`
	UserType     string             `json:"user_type,omitempty" bson:"user_type,omitempty"`
	CompanyID    string             `json:"company_id,omitempty" bson:"company_id,omitempty"`
	LocationID   string             `json:"location_id" bson:"location_id"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// SmartVaultToken stores the OAuth tokens for the SmartVault account.
type SmartVaultToken struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID           string             `json:"user_id" bson:"user_id"`
	AccessToken      string             `json:"access_token" bson:"access_token"`
	RefreshToken     string             `json:"refresh_token" bson:"refresh_token"`
	TokenType        string             `json:"token_type" bson:"token_type"`
	ExpiresAt        time.Time          `json:"expires_at" bson:"expires_at"`
	RefreshExpiresAt time.Time          `json:"refresh_expires_at" bson:"refresh_expires_at"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}
