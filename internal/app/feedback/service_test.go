package feedback

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
	"learnhub/internal/app/user"
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

func TestListFeedbackFiltersByCourse(t *testing.T) {
	var gotQuery url.Values

	router := chi.NewRouter()
	router.Get("/api/feedback/feedbacks/", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(api.Page[Feedback]{
			Count:   1,
			Results: []Feedback{{ID: 2, Course: 5, Rating: 4, Student: user.User{Name: "Bob"}}},
		})
	})

	service := newTestService(t, router)

	page, err := service.List(context.Background(), 5, api.ListOptions{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "5", gotQuery.Get("course"))
	assert.Equal(t, "10", gotQuery.Get("limit"))
	require.Len(t, page.Results, 1)
	assert.Equal(t, 4, page.Results[0].Rating)
}

func TestListFeedbackWithoutCourseFilter(t *testing.T) {
	var gotQuery url.Values

	router := chi.NewRouter()
	router.Get("/api/feedback/feedbacks/", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(api.Page[Feedback]{})
	})

	service := newTestService(t, router)

	_, err := service.List(context.Background(), 0, api.ListOptions{})
	require.NoError(t, err)
	assert.False(t, gotQuery.Has("course"))
}

func TestCreateFeedback(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/feedback/feedbacks/", func(w http.ResponseWriter, r *http.Request) {
		var payload FeedbackInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, int64(5), payload.Course)
		assert.Equal(t, 4, payload.Rating)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Feedback{ID: 2, Course: payload.Course, Rating: payload.Rating, Comment: payload.Comment})
	})

	service := newTestService(t, router)

	created, err := service.Create(context.Background(), FeedbackInput{Course: 5, Rating: 4, Comment: "solid"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)
	assert.Equal(t, "solid", created.Comment)
}

func TestUpdateFeedbackUsesPut(t *testing.T) {
	var gotMethod string

	router := chi.NewRouter()
	router.Put("/api/feedback/feedbacks/2/", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewEncoder(w).Encode(Feedback{ID: 2, Rating: 5})
	})

	service := newTestService(t, router)

	updated, err := service.Update(context.Background(), 2, FeedbackInput{Course: 5, Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, 5, updated.Rating)
}

func TestDeleteFeedback(t *testing.T) {
	var called bool

	router := chi.NewRouter()
	router.Delete("/api/feedback/feedbacks/2/", func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	service := newTestService(t, router)

	require.NoError(t, service.Delete(context.Background(), 2))
	assert.True(t, called)
}

func TestListStatusFiltersByUser(t *testing.T) {
	var gotQuery url.Values

	router := chi.NewRouter()
	router.Get("/api/feedback/status-updates/", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(api.Page[StatusUpdate]{
			Count:   1,
			Results: []StatusUpdate{{ID: 3, Content: "shipped week 2", User: user.User{ID: 7}}},
		})
	})

	service := newTestService(t, router)

	page, err := service.ListStatus(context.Background(), 7, api.ListOptions{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, "7", gotQuery.Get("user"))
	require.Len(t, page.Results, 1)
	assert.Equal(t, "shipped week 2", page.Results[0].Content)
}

func TestStatusCRUD(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/feedback/status-updates/", func(w http.ResponseWriter, r *http.Request) {
		var payload StatusInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(StatusUpdate{ID: 3, Content: payload.Content})
	})
	router.Put("/api/feedback/status-updates/3/", func(w http.ResponseWriter, r *http.Request) {
		var payload StatusInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(StatusUpdate{ID: 3, Content: payload.Content})
	})
	router.Delete("/api/feedback/status-updates/3/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	service := newTestService(t, router)
	ctx := context.Background()

	created, err := service.CreateStatus(ctx, StatusInput{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	updated, err := service.UpdateStatus(ctx, 3, StatusInput{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	assert.NoError(t, service.DeleteStatus(ctx, 3))
}
