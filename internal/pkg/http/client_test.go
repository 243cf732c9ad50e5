package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8081", 5*time.Second, nil)

	assert.Equal(t, "http://localhost:8081", client.BaseURL)
	assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client := NewClient("http://localhost:8081", 0, nil)

	assert.Equal(t, 10*time.Second, client.HTTPClient.Timeout)
}

func TestClient_BearerCredential(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	creds := NewCredentials()
	client := NewClient(server.URL, 5*time.Second, creds)

	// No credential configured: no Authorization header
	require.NoError(t, client.GetJSON(context.Background(), "/", nil))
	assert.Empty(t, gotAuth)

	// Credential configured: attached as a bearer header
	creds.SetBearerToken("token-abc")
	require.NoError(t, client.GetJSON(context.Background(), "/", nil))
	assert.Equal(t, "Bearer token-abc", gotAuth)

	// The next request after a write sees the latest value
	creds.SetBearerToken("token-def")
	require.NoError(t, client.GetJSON(context.Background(), "/", nil))
	assert.Equal(t, "Bearer token-def", gotAuth)

	// Cleared credential: header absent again
	creds.ClearBearerToken()
	require.NoError(t, client.GetJSON(context.Background(), "/", nil))
	assert.Empty(t, gotAuth)
}

func TestClient_SharedCredentials(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer shared-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	})
	serverA := httptest.NewServer(handler)
	defer serverA.Close()
	serverB := httptest.NewServer(handler)
	defer serverB.Close()

	// One credential write must be visible to every client on the pipeline
	creds := NewCredentials()
	clientA := NewClient(serverA.URL, 5*time.Second, creds)
	clientB := NewClient(serverB.URL, 5*time.Second, creds)

	creds.SetBearerToken("shared-token")

	require.NoError(t, clientA.GetJSON(context.Background(), "/", nil))
	require.NoError(t, clientB.GetJSON(context.Background(), "/", nil))
}

func TestClient_PostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "value", body["key"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"echo":"value"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)

	var result struct {
		Echo string `json:"echo"`
	}
	err := client.PostJSON(context.Background(), "/test", map[string]string{"key": "value"}, &result)

	require.NoError(t, err)
	assert.Equal(t, "value", result.Echo)
}

func TestClient_StatusError(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
	}{
		{
			name:            "Error body with message",
			status:          http.StatusUnauthorized,
			body:            `{"message":"Credenciales inválidas"}`,
			expectedMessage: "Credenciales inválidas",
		},
		{
			name:            "Error body without message",
			status:          http.StatusInternalServerError,
			body:            `{"error":"boom"}`,
			expectedMessage: "",
		},
		{
			name:            "Non-JSON error body",
			status:          http.StatusBadGateway,
			body:            "bad gateway",
			expectedMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second, nil)
			err := client.GetJSON(context.Background(), "/", nil)

			require.Error(t, err)
			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, tt.expectedMessage, statusErr.Message)
		})
	}
}
