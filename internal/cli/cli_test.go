package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/internal/api"
	"learnhub/internal/app/course"
	"learnhub/internal/app/feedback"
	"learnhub/internal/app/user"
	"learnhub/internal/auth"
	"learnhub/internal/configs"
	"learnhub/internal/pkg/errs"
)

func newTestApp(t *testing.T, router chi.Router) (*App, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)

	tokens := &auth.MemTokenStore{}
	client := api.NewClient(baseURL, 5*time.Second, tokens, 1000, 1000)
	users := user.NewService(client)

	var stdout bytes.Buffer
	app := &App{
		Config:   &configs.AppConfig{Environment: "development", BaseURL: baseURL},
		Client:   client,
		Tokens:   tokens,
		Session:  auth.NewSession(tokens, users, client),
		Users:    users,
		Courses:  course.NewService(client),
		Feedback: feedback.NewService(client),
		Stdout:   &stdout,
		Stdin:    strings.NewReader(""),
	}
	return app, &stdout
}

// platformRouter wires the minimal fake endpoints the command tests hit.
func platformRouter(t *testing.T) chi.Router {
	t.Helper()

	router := chi.NewRouter()
	router.Post("/api/user/login/", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload["password"] != "s3cret" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail": ["Invalid credentials."]}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "ok", "access_token": "tok-issued"})
	})
	router.Get("/api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-issued" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(user.User{ID: 7, Name: "Ada", Email: "ada@example.com"})
	})
	router.Get("/api/courses/courses/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.Page[course.Course]{
			Count: 1,
			Results: []course.Course{
				{ID: 3, Title: "Go Basics", Instructor: user.User{Name: "Ada"}, Rating: 4.5},
			},
		})
	})
	return router
}

func TestRunWithoutCommandPrintsUsage(t *testing.T) {
	app, stdout := newTestApp(t, chi.NewRouter())

	err := app.Run(context.Background(), []string{"learnhub"})
	assert.ErrorIs(t, err, ErrHelp)
	assert.Contains(t, stdout.String(), "Usage: learnhub COMMAND")
}

func TestRunUnknownCommandPrintsUsage(t *testing.T) {
	app, stdout := newTestApp(t, chi.NewRouter())

	err := app.Run(context.Background(), []string{"learnhub", "frobnicate"})
	assert.ErrorIs(t, err, ErrHelp)
	assert.Contains(t, stdout.String(), "Usage: learnhub COMMAND")
}

func TestLoginCommand(t *testing.T) {
	app, stdout := newTestApp(t, platformRouter(t))

	restore := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }
	defer func() { readPasswordFunc = restore }()

	err := app.Run(context.Background(), []string{"learnhub", "login", "-email", "ada@example.com"})
	require.NoError(t, err)

	assert.True(t, app.Session.IsAuthenticated())
	assert.Equal(t, "tok-issued", app.Tokens.Token())
	assert.Contains(t, stdout.String(), "Signed in as Ada")
}

func TestLoginCommandRequiresEmail(t *testing.T) {
	app, _ := newTestApp(t, platformRouter(t))

	err := app.Run(context.Background(), []string{"learnhub", "login"})
	assert.ErrorIs(t, err, ErrHelp)
}

func TestLoginCommandRejectedCredentials(t *testing.T) {
	app, _ := newTestApp(t, platformRouter(t))

	restore := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("wrong"), nil }
	defer func() { readPasswordFunc = restore }()

	err := app.Run(context.Background(), []string{"learnhub", "login", "-email", "ada@example.com"})
	require.Error(t, err)
	assert.Equal(t, errs.ErrValidation, errs.CodeOf(err))
	assert.False(t, app.Session.IsAuthenticated())
}

func TestWhoamiRequiresSession(t *testing.T) {
	app, _ := newTestApp(t, platformRouter(t))

	err := app.Run(context.Background(), []string{"learnhub", "whoami"})
	require.Error(t, err)
	assert.Equal(t, errs.ErrNotLoggedIn, errs.CodeOf(err))
}

func TestLogoutCommand(t *testing.T) {
	app, stdout := newTestApp(t, platformRouter(t))

	restore := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }
	defer func() { readPasswordFunc = restore }()

	require.NoError(t, app.Run(context.Background(), []string{"learnhub", "login", "-email", "ada@example.com"}))
	require.NoError(t, app.Run(context.Background(), []string{"learnhub", "logout"}))

	assert.False(t, app.Session.IsAuthenticated())
	assert.Empty(t, app.Tokens.Token())
	assert.Contains(t, stdout.String(), "Signed out.")
}

func TestCoursesCommandRendersTable(t *testing.T) {
	app, stdout := newTestApp(t, platformRouter(t))

	err := app.Run(context.Background(), []string{"learnhub", "courses"})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Go Basics")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "1 of 1 courses")
}

func TestCoursesMineRequiresSession(t *testing.T) {
	app, _ := newTestApp(t, platformRouter(t))

	err := app.Run(context.Background(), []string{"learnhub", "courses", "-mine"})
	require.Error(t, err)
	assert.Equal(t, errs.ErrNotLoggedIn, errs.CodeOf(err))
}

func TestPrintErrorExpandsValidationFields(t *testing.T) {
	app, stdout := newTestApp(t, chi.NewRouter())

	app.PrintError(errs.NewValidationError(http.StatusBadRequest, map[string][]string{
		"email": {"Enter a valid email address."},
	}))

	out := stdout.String()
	assert.Contains(t, out, "The platform rejected the submitted data.")
	assert.Contains(t, out, "email: Enter a valid email address.")
}

func TestPrintErrorPlainError(t *testing.T) {
	app, stdout := newTestApp(t, chi.NewRouter())

	app.PrintError(assert.AnError)
	assert.Contains(t, stdout.String(), "error:")
}
