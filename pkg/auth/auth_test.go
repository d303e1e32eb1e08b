package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-shop/pkg/errors"
)

func TestVerifyToken_Success(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/verify-token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user_id": 42, "username": "alice"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, nil)

	// Act
	principal, err := client.VerifyToken(context.Background(), "good-token")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if principal.UserID != 42 {
		t.Errorf("expected user_id 42, got %d", principal.UserID)
	}
	if principal.Username != "alice" {
		t.Errorf("expected username alice, got %s", principal.Username)
	}
}

func TestVerifyToken_Invalid(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, nil)

	// Act
	_, err := client.VerifyToken(context.Background(), "bad-token")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeUnauthorized) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}

func TestVerifyToken_ServiceUnreachable(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewHTTPClient(server.URL, nil)

	// Act
	_, err := client.VerifyToken(context.Background(), "any-token")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeUnavailable) {
		t.Errorf("expected unavailable error, got %v", err)
	}
}
