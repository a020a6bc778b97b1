package opportunity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Opportunity is the local mirror of one upstream opportunity. The
// upstream record id is the primary key; re-sync with the same id
// replaces every mutable field.
type Opportunity struct {
	ID            string               `json:"id" bson:"_id"`
	Name          string               `json:"name" bson:"name"`
	MonetaryValue primitive.Decimal128 `json:"monetary_value" bson:"monetary_value"`

	PipelineID        string `json:"pipeline_id" bson:"pipeline_id"`
	PipelineName      string `json:"pipeline_name" bson:"pipeline_name"`
	PipelineStageID   string `json:"pipeline_stage_id" bson:"pipeline_stage_id"`
	PipelineStageName string `json:"pipeline_stage_name" bson:"pipeline_stage_name"`

	AssignedTo        string `json:"assigned_to" bson:"assigned_to"`
	AssignedUserName  string `json:"assigned_user_name" bson:"assigned_user_name"`
	AssignedUserEmail string `json:"assigned_user_email" bson:"assigned_user_email"`

	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`

	ContactID          string   `json:"contact_id" bson:"contact_id"`
	ContactName        string   `json:"contact_name" bson:"contact_name"`
	ContactCompanyName string   `json:"contact_company_name" bson:"contact_company_name"`
	ContactEmail       string   `json:"contact_email" bson:"contact_email"`
	ContactPhone       string   `json:"contact_phone" bson:"contact_phone"`
	ContactTags        []string `json:"contact_tags" bson:"contact_tags"`

	LocationID string `json:"location_id" bson:"location_id"`
}

// Key returns the identity the reconciler upserts by.
func (o Opportunity) Key() string {
	return o.ID
}
