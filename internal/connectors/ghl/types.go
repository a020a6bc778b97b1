package ghl

import "encoding/json"

// Meta is the pagination block returned alongside every collection response.
type Meta struct {
	Total        int         `json:"total"`
	NextPageURL  string      `json:"nextPageUrl"`
	StartAfterID string      `json:"startAfterId"`
	StartAfter   json.Number `json:"startAfter"`
}

// ContactRef is the denormalized contact snapshot embedded in an opportunity.
type ContactRef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	CompanyName string   `json:"companyName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Tags        []string `json:"tags"`
}

// RawOpportunity is one opportunity exactly as the search endpoint returns it.
// Absent fields decode to zero values; defaulting happens in the transformer.
type RawOpportunity struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	MonetaryValue   float64    `json:"monetaryValue"`
	PipelineID      string     `json:"pipelineId"`
	PipelineStageID string     `json:"pipelineStageId"`
	AssignedTo      string     `json:"assignedTo"`
	Status          string     `json:"status"`
	CreatedAt       string     `json:"createdAt"`
	UpdatedAt       string     `json:"updatedAt"`
	LocationID      string     `json:"locationId"`
	Contact         ContactRef `json:"contact"`
}

// CustomField is an opaque key/value pair attached to a contact.
type CustomField struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

// RawContact is one contact exactly as the contacts endpoint returns it.
type RawContact struct {
	ID           string        `json:"id"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	DND          bool          `json:"dnd"`
	Country      string        `json:"country"`
	DateAdded    string        `json:"dateAdded"`
	Tags         []string      `json:"tags"`
	CustomFields []CustomField `json:"customFields"`
	LocationID   string        `json:"locationId"`
}

// OpportunityPage is one page of GET /opportunities/search.
type OpportunityPage struct {
	Opportunities []RawOpportunity `json:"opportunities"`
	Meta          Meta             `json:"meta"`
}

// ContactPage is one page of GET /contacts.
type ContactPage struct {
	Contacts []RawContact `json:"contacts"`
	Meta     Meta         `json:"meta"`
}

// Stage is one stage of a pipeline.
type Stage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Pipeline is one entry of GET /opportunities/pipelines.
type Pipeline struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Stages []Stage `json:"stages"`
}

// PipelineList is the full pipeline listing for a location.
type PipelineList struct {
	Pipelines []Pipeline `json:"pipelines"`
}

// UserProfile is the subset of GET /users/{id} the sync cares about.
type UserProfile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
