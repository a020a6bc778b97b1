package smartvault

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenExchangeParsesXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auto/auth/dtoken/2" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]any
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		if payload["grant_type"] != "authorization_code" {
			t.Errorf("grant_type = %v", payload["grant_type"])
		}

		w.Write([]byte(`<?xml version="1.0"?>
			<response>
				<message>
					<access_token>at-123</access_token>
					<refresh_token>rt-456</refresh_token>
					<token_type>bearer</token_type>
					<expires_in>1800</expires_in>
					<refresh_token_expires_in>86400</refresh_token_expires_in>
					<id>user@example.com</id>
				</message>
			</response>`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	token, err := client.ExchangeCode(context.Background(), "cid", "secret", "code-1")
	if err != nil {
		t.Fatalf("ExchangeCode() error = %v", err)
	}
	if token.AccessToken != "at-123" || token.RefreshToken != "rt-456" {
		t.Errorf("token = %+v", token)
	}
	if token.ExpiresIn != 1800 || token.RefreshTokenExpiresIn != 86400 {
		t.Errorf("token lifetimes = %+v", token)
	}
}

func TestTokenExchangeRejectsEmptyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<response><message></message></response>`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Refresh(context.Background(), "secret", "rt-456")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
}

func TestFirmAccountID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nodes/entity/SmartVault.Accounting.Firm" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer at-123" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"entities":[{"id":"firm-1"},{"id":"firm-2"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	id, err := client.FirmAccountID(context.Background(), "at-123")
	if err != nil {
		t.Fatalf("FirmAccountID() error = %v", err)
	}
	if id != "firm-1" {
		t.Errorf("FirmAccountID() = %q, want first listed entity", id)
	}
}

func TestCreateFirmClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		wantPath := "/nodes/entity/SmartVault.Accounting.Firm/firm-1/SmartVault.Accounting.FirmClient"
		if r.URL.Path != wantPath {
			t.Errorf("path = %s, want %s", r.URL.Path, wantPath)
		}

		var entity map[string]any
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &entity); err != nil {
			t.Fatalf("body is not JSON: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"name":"PatJones15","uri":"/nodes/entity/..."}`))
	}))
	defer server.Close()

	entity := NewIndividualClient(AccountingClient{
		Persons: []Person{{
			Names: []PersonName{{FirstName: "Pat", LastName: "Jones"}},
		}},
		ClientID: "PatJones15",
	})
	if entity.Entity.SmartVault.Accounting.Client.TypeQualifier != "Individual" {
		t.Fatalf("TypeQualifier = %q", entity.Entity.SmartVault.Accounting.Client.TypeQualifier)
	}
	if entity.Entity.SmartVault.Accounting.Client.EndOfFiscalYear != 12 {
		t.Fatalf("EndOfFiscalYear = %d", entity.Entity.SmartVault.Accounting.Client.EndOfFiscalYear)
	}

	client := NewClient(server.URL)
	result, err := client.CreateFirmClient(context.Background(), "at-123", "firm-1", entity)
	if err != nil {
		t.Fatalf("CreateFirmClient() error = %v", err)
	}
	if result["name"] != "PatJones15" {
		t.Errorf("result = %v", result)
	}
}
