package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/internal/api"
	"learnhub/internal/pkg/errs"
)

type stubTokens struct{ token string }

func (s *stubTokens) Token() string { return s.token }
func (s *stubTokens) Clear() error  { s.token = ""; return nil }

func newTestService(t *testing.T, router chi.Router) *Service {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)

	return NewService(api.NewClient(baseURL, 5*time.Second, &stubTokens{token: "tok"}, 1000, 1000))
}

func TestRegister(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/user/register/", func(w http.ResponseWriter, r *http.Request) {
		var payload RegisterInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "ada@example.com", payload.Email)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(User{ID: 1, Name: payload.Name, Email: payload.Email})
	})

	service := newTestService(t, router)

	created, err := service.Register(context.Background(), RegisterInput{
		Name:            "Ada",
		Email:           "ada@example.com",
		Password:        "s3cret",
		ConfirmPassword: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Ada", created.Name)
}

func TestLoginReturnsToken(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/user/login/", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "ada@example.com", payload["email"])
		assert.Equal(t, "s3cret", payload["password"])

		json.NewEncoder(w).Encode(map[string]string{
			"message":      "Login successful",
			"access_token": "tok-issued",
		})
	})

	service := newTestService(t, router)

	token, err := service.Login(context.Background(), "ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "tok-issued", token)
}

func TestLoginRejected(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/user/login/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": ["Invalid credentials."]}`))
	})

	service := newTestService(t, router)

	_, err := service.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, errs.ErrValidation, errs.CodeOf(err))
}

func TestProfilePathHasNoTrailingSlash(t *testing.T) {
	var gotPath string

	router := chi.NewRouter()
	router.Get("/api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(User{ID: 7, Email: "ada@example.com"})
	})

	service := newTestService(t, router)

	profile, err := service.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/user/profile", gotPath)
	assert.Equal(t, int64(7), profile.ID)
}

func TestUpdateProfile(t *testing.T) {
	router := chi.NewRouter()
	router.Put("/api/user/profile/", func(w http.ResponseWriter, r *http.Request) {
		var payload ProfileInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(User{ID: 7, Name: payload.Name, Bio: payload.Bio})
	})

	service := newTestService(t, router)

	updated, err := service.UpdateProfile(context.Background(), ProfileInput{Name: "Ada L", Bio: "teacher"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L", updated.Name)
	assert.Equal(t, "teacher", updated.Bio)
}

func TestChangePasswordReturnsRotatedToken(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/user/change-password/", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "old", payload["old_password"])
		assert.Equal(t, "new", payload["new_password"])
		assert.Equal(t, "new", payload["confirm_new_password"])

		json.NewEncoder(w).Encode(map[string]string{
			"message":      "Password changed",
			"access_token": "tok-rotated",
		})
	})

	service := newTestService(t, router)

	token, err := service.ChangePassword(context.Background(), "old", "new", "new")
	require.NoError(t, err)
	assert.Equal(t, "tok-rotated", token)
}

func TestPasswordResetFlow(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/user/send-password-reset/", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "ada@example.com", payload["email"])
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/api/user/reset-password/", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "uid-1", payload["uid"])
		assert.Equal(t, "reset-tok", payload["token"])
		w.WriteHeader(http.StatusOK)
	})

	service := newTestService(t, router)
	ctx := context.Background()

	require.NoError(t, service.SendPasswordReset(ctx, "ada@example.com"))
	require.NoError(t, service.ResetPassword(ctx, "uid-1", "reset-tok", "new", "new"))
}

func TestListUsers(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/user/users/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(api.Page[User]{
			Count:   11,
			Results: []User{{ID: 1, Name: "Ada"}},
		})
	})

	service := newTestService(t, router)

	page, err := service.List(context.Background(), api.ListOptions{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 11, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Ada", page.Results[0].Name)
}
