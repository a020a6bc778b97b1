package vault

import (
	"strings"
	"testing"
)

func TestBuildClient(t *testing.T) {
	tests := []struct {
		name       string
		req        WebhookRequest
		wantID     string
		wantEmails int
		wantPhones int
	}{
		{
			name:       "Full Payload",
			req:        WebhookRequest{FirstName: "Pat", LastName: "Jones", Email: "pat@example.com", Phone: "+15551234567"},
			wantID:     "PatJones15",
			wantEmails: 1,
			wantPhones: 1,
		},
		{
			name:       "No Email Drops Length Suffix",
			req:        WebhookRequest{FirstName: "Pat", LastName: "Jones", Phone: "+15551234567"},
			wantID:     "PatJones",
			wantPhones: 1,
		},
		{
			name:   "Names Only",
			req:    WebhookRequest{FirstName: "Pat", LastName: "Jones"},
			wantID: "PatJones",
		},
		{
			name:       "Whitespace Trimmed",
			req:        WebhookRequest{FirstName: " Pat ", LastName: " Jones ", Email: " pat@example.com "},
			wantID:     "PatJones15",
			wantEmails: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildClient(tt.req, strings.TrimSpace(tt.req.FirstName), strings.TrimSpace(tt.req.LastName))

			if got.ClientID != tt.wantID {
				t.Errorf("ClientID = %q, want %q", got.ClientID, tt.wantID)
			}
			if len(got.Persons) != 1 {
				t.Fatalf("Persons = %d, want 1", len(got.Persons))
			}
			person := got.Persons[0]
			if len(person.EmailAddresses) != tt.wantEmails {
				t.Errorf("EmailAddresses = %d, want %d", len(person.EmailAddresses), tt.wantEmails)
			}
			if len(person.PhoneNumbers) != tt.wantPhones {
				t.Errorf("PhoneNumbers = %d, want %d", len(person.PhoneNumbers), tt.wantPhones)
			}
		})
	}
}
