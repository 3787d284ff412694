package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return st
}

func newTestClient(t *testing.T, handler http.Handler, st *store.Store) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, st, nil, zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func TestClientAttachesBearerTokenAndRequestID(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SetToken("secret-token"))

	var gotAuth, gotRequestID string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, []any{})
	}), st)

	_, err := client.ListPackages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []any{})
	}), newTestStore(t))

	_, err := client.ListPackages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientExtractsDetailFromErrorBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Package not found"})
	}), newTestStore(t))

	_, err := client.GetPackage(context.Background(), 42)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Package not found", apiErr.Detail)
}

func TestClientFallsBackToGenericHTTPMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	}), newTestStore(t))

	_, err := client.ListPackages(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "HTTP 500", apiErr.Detail)
}

func TestClientConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	client := NewClient(srv.URL+"/", time.Second, newTestStore(t), nil, zap.NewNop())

	_, err := client.ListPackages(context.Background())
	require.Error(t, err)

	var connErr *ConnectionError
	assert.ErrorAs(t, err, &connErr)
}

func TestClientExpiredSessionWithoutRefreshToken(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SetToken("expired"))

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	}), st)

	_, err := client.GetProfile(context.Background())
	assert.True(t, errors.Is(err, ErrAuthRequired))
}

func TestClientUnauthenticated401KeepsBackendDetail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
	}), newTestStore(t))

	_, err := client.Login(context.Background(), &request.LoginRequest{Email: "jane@example.com", Password: "wrong"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Detail)
}

func TestClientRefreshesTokenOn401(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SetToken("stale"))
	require.NoError(t, st.SetRefreshToken("refresh-me"))

	var profileCalls, refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile/", func(w http.ResponseWriter, r *http.Request) {
		profileCalls++
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "username": "jane"})
	})
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["refresh"] != "refresh-me" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "bad refresh"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh"})
	})

	client := newTestClient(t, mux, st)

	profile, err := client.GetProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "jane", profile.Username)
	assert.Equal(t, 2, profileCalls, "original request should be retried once")
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, "fresh", st.Token(), "refreshed token should be persisted")
}

func TestClientParseErrorOnMalformedJSON(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{not json"))
	}), newTestStore(t))

	_, err := client.ListPackages(context.Background())
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestClientParseErrorOnWrongContentType(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("hello"))
	}), newTestStore(t))

	_, err := client.ListPackages(context.Background())
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestClientUpdatesProfileWithMultipartPut(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SetToken("tok"))

	var gotMethod, gotName, gotAvatar string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		assert.Equal(t, "/users/profile/update/", r.URL.Path)
		r.ParseMultipartForm(32 << 20)
		gotName = r.FormValue("name")
		if files := r.MultipartForm.File["profile_picture"]; len(files) > 0 {
			gotAvatar = files[0].Filename
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "username": "jane"})
	}), st)

	avatar := bytes.NewReader([]byte{0xFF, 0xD8, 0xFF})
	profile, err := client.UpdateProfile(context.Background(), map[string]string{"name": "Jane Doe"}, "avatar.jpg", avatar)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod, "the backend only routes profile updates as PUT")
	assert.Equal(t, "Jane Doe", gotName)
	assert.Equal(t, "avatar.jpg", gotAvatar)
	assert.Equal(t, "jane", profile.Username)
}

func TestClientDownloadsBinaryReceipt(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SetToken("tok"))

	pdf := []byte("%PDF-1.4 receipt")
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/bookings/7/pdf/", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}), st)

	data, err := client.DownloadReceipt(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, pdf, data)
}

func TestUserMessageTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", ErrAuthRequired, "Please log in before continuing"},
		{"validation", NewValidationError("Not enough seats available"), "Not enough seats available"},
		{"api", &APIError{Status: 400, Detail: "Booking failed"}, "Booking failed"},
		{"connection", &ConnectionError{Err: errors.New("dial tcp")}, "Could not connect to server"},
		{"parse", &ParseError{Err: errors.New("bad json")}, "Server returned an invalid response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
