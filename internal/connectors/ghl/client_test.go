package ghl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientAPIErrorClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/opportunities/search":
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"message":"rate limited"}`))
		case "/contacts/":
			w.Write([]byte(`{"contacts":[],"meta":{"total":0}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", 0)
	ctx := context.Background()

	_, err := client.SearchOpportunities(ctx, "loc1", "p1", 100, Cursor{}, 0)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Errorf("APIError.Status = %d, want 429", apiErr.Status)
	}
	if apiErr.Body == "" {
		t.Error("APIError.Body is empty, want upstream payload")
	}

	page, err := client.ListContacts(ctx, "loc1", 100, Cursor{}, 0)
	if err != nil {
		t.Fatalf("ListContacts() error = %v", err)
	}
	if len(page.Contacts) != 0 {
		t.Errorf("ListContacts() returned %d contacts, want 0", len(page.Contacts))
	}
}

func TestClientSendsAuthAndVersionHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Version"); got != apiVersion {
			t.Errorf("Version = %q, want %q", got, apiVersion)
		}
		w.Write([]byte(`{"pipelines":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", 0)
	if _, err := client.ListPipelines(context.Background(), "loc1"); err != nil {
		t.Fatalf("ListPipelines() error = %v", err)
	}
}

func TestClientTransportFailure(t *testing.T) {
	// A server that is already closed forces a transport error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "token", 0)
	_, err := client.GetUser(context.Background(), "u1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("transport failure should carry status 0, got %d", apiErr.Status)
	}
}
