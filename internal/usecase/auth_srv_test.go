package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking/internal/api"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/store"
)

func newAuthEnv(t *testing.T, handler http.Handler) (AuthService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	client := newTestBackend(t, st, handler)
	return NewAuthService(client, st, zap.NewNop()), st
}

func authBackend(profileStatus int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/login/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "hunter22" {
			jsonResponse(w, http.StatusUnauthorized, `{"detail": "Invalid credentials"}`)
			return
		}
		jsonResponse(w, http.StatusOK, `{"access": "access-1", "refresh": "refresh-1"}`)
	})
	mux.HandleFunc("/users/profile/", func(w http.ResponseWriter, r *http.Request) {
		if profileStatus != http.StatusOK {
			jsonResponse(w, profileStatus, `{"detail": "profile unavailable"}`)
			return
		}
		jsonResponse(w, http.StatusOK, `{"id": 5, "username": "jane", "email": "jane@example.com", "is_agency": false}`)
	})
	return mux
}

func TestLoginStoresAccessToken(t *testing.T) {
	svc, st := newAuthEnv(t, authBackend(http.StatusOK))

	profile, err := svc.Login(context.Background(), "jane@example.com", "hunter22", false)
	require.NoError(t, err)

	assert.Equal(t, "access-1", st.Token())
	assert.Empty(t, st.RefreshToken(), "refresh token is only kept with remember")
	require.NotNil(t, profile)
	assert.Equal(t, "jane", profile.Username)
}

func TestLoginWithRememberKeepsRefreshToken(t *testing.T) {
	svc, st := newAuthEnv(t, authBackend(http.StatusOK))

	_, err := svc.Login(context.Background(), "jane@example.com", "hunter22", true)
	require.NoError(t, err)

	assert.Equal(t, "access-1", st.Token())
	assert.Equal(t, "refresh-1", st.RefreshToken())
}

func TestLoginSurfacesBackendDetail(t *testing.T) {
	svc, st := newAuthEnv(t, authBackend(http.StatusOK))

	_, err := svc.Login(context.Background(), "jane@example.com", "wrong", false)

	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", api.UserMessage(err))
	assert.Empty(t, st.Token())
}

func TestLoginValidatesInputBeforeRequest(t *testing.T) {
	svc, _ := newAuthEnv(t, authBackend(http.StatusOK))

	_, err := svc.Login(context.Background(), "not-an-email", "hunter22", false)

	var validationErr *api.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestLoginSucceedsWhenProfileFetchFails(t *testing.T) {
	svc, st := newAuthEnv(t, authBackend(http.StatusInternalServerError))

	profile, err := svc.Login(context.Background(), "jane@example.com", "hunter22", false)

	require.NoError(t, err, "the session is established even without a profile")
	assert.Nil(t, profile)
	assert.Equal(t, "access-1", st.Token())
}

func TestLogoutClearsTokens(t *testing.T) {
	svc, st := newAuthEnv(t, authBackend(http.StatusOK))
	require.NoError(t, st.SetToken("tok"))
	require.NoError(t, st.SetRefreshToken("ref"))

	require.NoError(t, svc.Logout())

	assert.Empty(t, st.Token())
	assert.Empty(t, st.RefreshToken())
}

func TestUpdateProfileSendsOnlyChangedFields(t *testing.T) {
	var gotMethod string
	var gotFields map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile/update/", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		r.ParseMultipartForm(32 << 20)
		gotFields = r.MultipartForm.Value
		jsonResponse(w, http.StatusOK, `{"id": 5, "username": "jane", "phone": "0899999999"}`)
	})

	svc, st := newAuthEnv(t, mux)
	loggedIn(t, st)

	form := &request.ProfileUpdateForm{Phone: "0899999999"}
	profile, err := svc.UpdateProfile(context.Background(), form, "")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, []string{"0899999999"}, gotFields["phone"])
	assert.NotContains(t, gotFields, "name", "untouched fields stay out of the form")
	assert.Equal(t, "0899999999", profile.Phone)
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	svc, _ := newAuthEnv(t, authBackend(http.StatusOK))

	_, err := svc.UpdateProfile(context.Background(), &request.ProfileUpdateForm{Phone: "0899999999"}, "")

	assert.ErrorIs(t, err, api.ErrAuthRequired)
}

func TestProfileRequiresSession(t *testing.T) {
	svc, _ := newAuthEnv(t, authBackend(http.StatusOK))

	_, err := svc.Profile(context.Background())

	assert.ErrorIs(t, err, api.ErrAuthRequired)
}
