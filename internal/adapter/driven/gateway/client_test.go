package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubengr/gwreports/internal/adapter/driven/gateway"
	"github.com/rubengr/gwreports/internal/domain/port/driven"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler, opts ...gateway.Option) *gateway.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]gateway.Option{gateway.WithHTTPClient(server.Client())}, opts...)

	return gateway.New(server.URL, opts...)
}

func TestLogin_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "alice", r.URL.Query().Get("username"))
		assert.Equal(t, "s3cret", r.URL.Query().Get("password"))
		assert.Equal(t, "True", r.URL.Query().Get("accept_terms"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "token": "tok-123"}`))
	})

	client := newTestClient(t, handler)
	token, err := client.Login(context.Background(), "alice", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestLogin_AcceptTermsDisabled(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["accept_terms"]
		assert.False(t, present, "accept_terms must not be sent when disabled")

		w.Write([]byte(`{"success": true, "token": "tok-123"}`))
	})

	client := newTestClient(t, handler, gateway.WithAcceptTerms(false))
	_, err := client.Login(context.Background(), "alice", "s3cret")

	require.NoError(t, err)
}

func TestLogin_Unauthorized(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := newTestClient(t, handler)
	_, err := client.Login(context.Background(), "alice", "wrong")

	var authErr *driven.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "msg": "invalid_credentials"}`))
	})

	client := newTestClient(t, handler)
	_, err := client.Login(context.Background(), "alice", "wrong")

	var authErr *driven.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusOK, authErr.StatusCode)
	assert.Equal(t, "invalid_credentials", authErr.Message)
}

func TestLogin_MissingToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	})

	client := newTestClient(t, handler)
	_, err := client.Login(context.Background(), "alice", "s3cret")

	var malformedErr *driven.MalformedResponseError
	require.ErrorAs(t, err, &malformedErr)
}

func TestLogin_EmptyToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "token": ""}`))
	})

	client := newTestClient(t, handler)
	_, err := client.Login(context.Background(), "alice", "s3cret")

	var malformedErr *driven.MalformedResponseError
	require.ErrorAs(t, err, &malformedErr)
}

func TestLogin_InvalidJSON(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>login page</html>`))
	})

	client := newTestClient(t, handler)
	_, err := client.Login(context.Background(), "alice", "s3cret")

	var malformedErr *driven.MalformedResponseError
	require.ErrorAs(t, err, &malformedErr)
}

func TestLogin_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := gateway.New(server.URL)
	_, err := client.Login(context.Background(), "alice", "s3cret")

	var connErr *driven.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.NotNil(t, errors.Unwrap(connErr))
	assert.NotContains(t, connErr.Endpoint, "s3cret", "error endpoint must not carry the query string")
}

func TestFetchTestReport_Success(t *testing.T) {
	report := []byte(`<?xml version="1.0" ?><suite name="a"/>`)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/plugins/testrunner/get_test_report", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		w.Write(report)
	})

	client := newTestClient(t, handler)
	body, err := client.FetchTestReport(context.Background(), "tok-123")

	require.NoError(t, err)
	assert.Equal(t, report, body)
}

func TestFetchTestReport_ServerError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, handler)
	_, err := client.FetchTestReport(context.Background(), "tok-123")

	var fetchErr *driven.ReportFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
	assert.Contains(t, fetchErr.Endpoint, "/plugins/testrunner/get_test_report")
}

func TestCheckHealth_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health_check", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "health check is unauthenticated")

		w.Write([]byte(`{"health_version": 2, "health": {"master": {"state": true}, "vpn": {"state": false}}}`))
	})

	client := newTestClient(t, handler)
	health, err := client.CheckHealth(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, health.Version)
	assert.Equal(t, map[string]bool{"master": true, "vpn": false}, health.Services)
	assert.False(t, health.Healthy())
}

func TestCheckHealth_AllUp(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"health_version": 1, "health": {"master": {"state": true}}}`))
	})

	client := newTestClient(t, handler)
	health, err := client.CheckHealth(context.Background())

	require.NoError(t, err)
	assert.True(t, health.Healthy())
}
