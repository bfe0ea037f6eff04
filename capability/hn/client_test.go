package hn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/harborview/signals/capability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchDiscussions(t *testing.T) {
	since := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Acme Corp", q.Get("query"))
		assert.Equal(t, "story", q.Get("tags"))
		assert.Equal(t, "created_at_i>"+strconv.FormatInt(since.Unix(), 10), q.Get("numericFilters"))

		json.NewEncoder(w).Encode(map[string]any{
			"hits": []map[string]any{{
				"objectID":     "41234567",
				"title":        "Acme Corp launches anvils",
				"points":       128,
				"num_comments": 42,
				"created_at_i": createdAt.Unix(),
			}},
		})
	}))
	defer server.Close()

	client := NewClient(WithHost(server.URL))
	discussions, err := client.SearchDiscussions(context.Background(), "Acme Corp", since, 5)
	require.NoError(t, err)
	require.Len(t, discussions, 1)

	d := discussions[0]
	assert.Equal(t, "41234567", d.ID)
	assert.Equal(t, "Acme Corp launches anvils", d.Title)
	assert.Equal(t, "https://news.ycombinator.com/item?id=41234567", d.URL)
	assert.Equal(t, 128, d.Points)
	assert.Equal(t, 42, d.CommentCount)
	assert.Equal(t, createdAt, d.CreatedAt)
}

func TestTopComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tags := r.URL.Query().Get("tags")
		require.True(t, strings.HasPrefix(tags, "comment,story_"))

		json.NewEncoder(w).Encode(map[string]any{
			"hits": []map[string]any{
				{"comment_text": "Great product"},
				{"comment_text": ""},
				{"comment_text": "Too expensive"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(WithHost(server.URL))
	comments, err := client.TopComments(context.Background(), "41234567", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Great product", "Too expensive"}, comments)
}

func TestSearchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(WithHost(server.URL))
	_, err := client.SearchDiscussions(context.Background(), "x", time.Now(), 5)
	assert.ErrorIs(t, err, capability.ErrRequestFailed)
}
