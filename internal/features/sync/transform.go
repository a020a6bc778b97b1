package sync

import (
	"context"
	"strconv"
	"time"

	"go-ghlsync/internal/connectors/ghl"
	"go-ghlsync/internal/features/contact"
	"go-ghlsync/internal/features/opportunity"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Resolver supplies the reference data a transform needs: pre-loaded
// pipeline/stage names and lazily-fetched user profiles.
type Resolver interface {
	PipelineName(pipelineID string) string
	StageName(pipelineID, stageID string) string
	User(ctx context.Context, userID string) ghl.UserProfile
}

// Transformer maps raw upstream records into local entities. Every
// absent field gets a documented default (empty string, zero, empty
// list); transformation never fails.
type Transformer struct {
	loc      *time.Location
	resolver Resolver
	log      *zap.Logger
	now      func() time.Time
}

func NewTransformer(loc *time.Location, resolver Resolver, log *zap.Logger) *Transformer {
	return &Transformer{
		loc:      loc,
		resolver: resolver,
		log:      log,
		now:      time.Now,
	}
}

// Opportunity normalizes one raw opportunity, resolving pipeline, stage
// and assignee names through the run's reference cache.
func (t *Transformer) Opportunity(ctx context.Context, raw ghl.RawOpportunity) opportunity.Opportunity {
	var user ghl.UserProfile
	if raw.AssignedTo != "" {
		user = t.resolver.User(ctx, raw.AssignedTo)
	}

	tags := raw.Contact.Tags
	if tags == nil {
		tags = []string{}
	}

	return opportunity.Opportunity{
		ID:            raw.ID,
		Name:          raw.Name,
		MonetaryValue: decimalValue(raw.MonetaryValue),

		PipelineID:        raw.PipelineID,
		PipelineName:      t.resolver.PipelineName(raw.PipelineID),
		PipelineStageID:   raw.PipelineStageID,
		PipelineStageName: t.resolver.StageName(raw.PipelineID, raw.PipelineStageID),

		AssignedTo:        raw.AssignedTo,
		AssignedUserName:  user.Name,
		AssignedUserEmail: user.Email,

		Status:    raw.Status,
		CreatedAt: t.normalizeTime(raw.CreatedAt),
		UpdatedAt: t.normalizeTime(raw.UpdatedAt),

		ContactID:          raw.Contact.ID,
		ContactName:        raw.Contact.Name,
		ContactCompanyName: raw.Contact.CompanyName,
		ContactEmail:       raw.Contact.Email,
		ContactPhone:       raw.Contact.Phone,
		ContactTags:        tags,

		LocationID: raw.LocationID,
	}
}

// Contact normalizes one raw contact. The stored timestamp field
// mirrors date_added.
func (t *Transformer) Contact(raw ghl.RawContact) contact.Contact {
	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}

	fields := make([]contact.CustomField, 0, len(raw.CustomFields))
	for _, f := range raw.CustomFields {
		fields = append(fields, contact.CustomField{ID: f.ID, Value: f.Value})
	}

	added := t.normalizeTime(raw.DateAdded)

	return contact.Contact{
		ID:           raw.ID,
		FirstName:    raw.FirstName,
		LastName:     raw.LastName,
		Phone:        raw.Phone,
		Email:        raw.Email,
		DND:          raw.DND,
		Country:      raw.Country,
		DateAdded:    added,
		Timestamp:    added,
		Tags:         tags,
		CustomFields: fields,
		LocationID:   raw.LocationID,
	}
}

// normalizeTime parses an upstream ISO-8601 timestamp and converts it
// into the target timezone. Naive values are assumed UTC. An absent
// value yields the current instant silently; an unparseable one yields
// the current instant with a warning.
func (t *Transformer) normalizeTime(value string) time.Time {
	if value == "" {
		return t.now().In(t.loc)
	}

	if parsed, ok := parseISO(value); ok {
		return parsed.In(t.loc)
	}

	t.log.Warn("could not parse timestamp, substituting current time",
		zap.String("value", value))
	return t.now().In(t.loc)
}

func parseISO(value string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}

	// Timezone-naive variants are treated as UTC.
	naive := []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range naive {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// decimalValue stores the monetary amount as a two-place decimal.
func decimalValue(v float64) primitive.Decimal128 {
	d, err := primitive.ParseDecimal128(strconv.FormatFloat(v, 'f', 2, 64))
	if err != nil {
		return primitive.Decimal128{}
	}
	return d
}
