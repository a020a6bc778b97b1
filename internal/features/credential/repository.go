package credential

import (
	"context"
	"time"

	"go-ghlsync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GHLCredentialRepository interface {
	UpsertByLocation(ctx context.Context, cred *GHLCredential) error
	First(ctx context.Context) (*GHLCredential, error)
}

type SmartVaultTokenRepository interface {
	UpsertByUser(ctx context.Context, token *SmartVaultToken) error
	First(ctx context.Context) (*SmartVaultToken, error)
}

type GHLCredentialRepositoryImpl struct {
	collection *mongo.Collection
}

func NewGHLCredentialRepository(db *database.MongodbDB) GHLCredentialRepository {
	return &GHLCredentialRepositoryImpl{
		collection: db.DB.Collection("ghl_credentials"),
	}
}

// UpsertByLocation stores one credential row per location id.
func (r *GHLCredentialRepositoryImpl) UpsertByLocation(ctx context.Context, cred *GHLCredential) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"user_id":       cred.UserID,
			"access_token":  cred.AccessToken,
			"refresh_token": cred.RefreshToken,
			"expires_in":    cred.ExpiresIn,
			"scope":         cred.Scope,
			"user_type":     cred.UserType,
			"company_id":    cred.CompanyID,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"location_id": cred.LocationID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *GHLCredentialRepositoryImpl) First(ctx context.Context) (*GHLCredential, error) {
	var cred GHLCredential
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&cred)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

type SmartVaultTokenRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSmartVaultTokenRepository(db *database.MongodbDB) SmartVaultTokenRepository {
	return &SmartVaultTokenRepositoryImpl{
		collection: db.DB.Collection("smartvault_tokens"),
	}
}

func (r *SmartVaultTokenRepositoryImpl) UpsertByUser(ctx context.Context, token *SmartVaultToken) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"access_token":       token.AccessToken,
			"refresh_token":      token.RefreshToken,
			"token_type":         token.TokenType,
			"expires_at":         token.ExpiresAt,
			"refresh_expires_at": token.RefreshExpiresAt,
			"updated_at":         now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": token.UserID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *SmartVaultTokenRepositoryImpl) First(ctx context.Context) (*SmartVaultToken, error) {
	var token SmartVaultToken
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}
