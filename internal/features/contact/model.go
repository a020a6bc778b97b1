package contact

import "time"

// CustomField is an opaque key/value pair carried through from upstream.
type CustomField struct {
	ID    string `json:"id" bson:"id"`
	Value any    `json:"value" bson:"value"`
}

// Contact is the local mirror of one upstream contact, unique by the
// upstream contact id. Upsert is a full-field overwrite on conflict.
type Contact struct {
	ID        string `json:"id" bson:"_id"`
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Phone     string `json:"phone" bson:"phone"`
	Email     string `json:"email" bson:"email"`
	DND       bool   `json:"dnd" bson:"dnd"`
	Country   string `json:"country" bson:"country"`

	DateAdded time.Time `json:"date_added" bson:"date_added"`
	// Timestamp mirrors DateAdded on every write.
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`

	Tags         []string      `json:"tags" bson:"tags"`
	CustomFields []CustomField `json:"custom_fields" bson:"custom_fields"`
	LocationID   string        `json:"location_id" bson:"location_id"`
}

// Key returns the identity the reconciler upserts by.
func (c Contact) Key() string {
	return c.ID
}
