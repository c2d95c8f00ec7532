package api

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOptionsValues(t *testing.T) {
	t.Run("page convention", func(t *testing.T) {
		values := ListOptions{Page: 3}.Values()
		assert.Equal(t, "3", values.Get("page"))
		assert.Empty(t, values.Get("limit"))
		assert.Empty(t, values.Get("offset"))
	})

	t.Run("limit and offset convention", func(t *testing.T) {
		values := ListOptions{Limit: 25, Offset: 50}.Values()
		assert.Equal(t, "25", values.Get("limit"))
		assert.Equal(t, "50", values.Get("offset"))
		assert.Empty(t, values.Get("page"))
	})

	t.Run("zero offset is still sent with limit", func(t *testing.T) {
		values := ListOptions{Limit: 10}.Values()
		assert.Equal(t, "10", values.Get("limit"))
		assert.Equal(t, "0", values.Get("offset"))
	})

	t.Run("filters pass through", func(t *testing.T) {
		filters := url.Values{}
		filters.Set("search", "golang")
		filters.Set("instructor", "7")

		values := ListOptions{Page: 1, Filters: filters}.Values()
		assert.Equal(t, "golang", values.Get("search"))
		assert.Equal(t, "7", values.Get("instructor"))
		assert.Equal(t, "1", values.Get("page"))
	})

	t.Run("empty options render empty", func(t *testing.T) {
		assert.Empty(t, ListOptions{}.Values())
	})
}

func TestPageEnvelopeDecoding(t *testing.T) {
	raw := `{"count": 42, "results": [{"id": 1}, {"id": 2}]}`

	var page Page[struct {
		ID int64 `json:"id"`
	}]
	require.NoError(t, json.Unmarshal([]byte(raw), &page))

	assert.Equal(t, 42, page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, int64(2), page.Results[1].ID)
}
