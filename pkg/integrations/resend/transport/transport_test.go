package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	noDelay := time.Duration(0)

	client := NewClient(ClientOptions{
		BaseURL:   server.URL,
		APIKey:    "re_test_key",
		PageDelay: &noDelay,
		Logger:    zerolog.Nop(),
	})

	return client, server
}

func pageItems(start, count int) []map[string]any {
	items := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, map[string]any{
			"id":   fmt.Sprintf("item_%d", start+i),
			"name": fmt.Sprintf("Item %d", start+i),
		})
	}

	return items
}

func TestDo_SetsBearerAuthAndDecodesResponse(t *testing.T) {
	var gotAuth, gotContentType string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"em_123"}`)
	}))

	var out map[string]any

	err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/emails",
		Body:   map[string]any{"from": "a@b.co"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test_key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "em_123", out["id"])
}

func TestDo_NonSuccessStatusReturnsAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"name":"invalid_api_key","message":"API key is invalid"}`)
	}))

	err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/domains"}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid_api_key", apiErr.Name)
	assert.Contains(t, apiErr.Error(), "API key is invalid")
}

func TestFetchAll_BoundedLimitIsSingleRequest(t *testing.T) {
	var requests []string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)

		json.NewEncoder(w).Encode(map[string]any{
			"data":     pageItems(0, 5),
			"has_more": true,
		})
	}))

	items, err := client.FetchAll(context.Background(), "/audiences", nil, false, 5)

	require.NoError(t, err)
	require.Len(t, requests, 1, "a limit at or under the page size must be one request")
	assert.Equal(t, "limit=5", requests[0])
	assert.Len(t, items, 5)
}

func TestFetchAll_ReturnAllFollowsCursor(t *testing.T) {
	var queries []string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)

		switch r.URL.Query().Get("after") {
		case "":
			json.NewEncoder(w).Encode(map[string]any{
				"data":     pageItems(0, 100),
				"has_more": true,
			})
		case "item_99":
			json.NewEncoder(w).Encode(map[string]any{
				"data":     pageItems(100, 30),
				"has_more": false,
			})
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("after"))
		}
	}))

	items, err := client.FetchAll(context.Background(), "/contacts", nil, true, 0)

	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, "limit=100", queries[0], "return-all pages are capped at the provider maximum")
	assert.Contains(t, queries[1], "after=item_99", "the cursor is the id of the previous page's last item")
	assert.Len(t, items, 130)
}

func TestFetchAll_TruncatesAtTarget(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data":     pageItems(0, 100),
			"has_more": true,
		})
	}))

	items, err := client.FetchAll(context.Background(), "/contacts", nil, false, 150)

	require.NoError(t, err)
	assert.Len(t, items, 150, "results past the requested limit are discarded")
}

func TestFetchAll_StopsOnEmptyPage(t *testing.T) {
	calls := 0

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		if calls == 1 {
			json.NewEncoder(w).Encode(map[string]any{
				"data":     pageItems(0, 10),
				"has_more": true,
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"data":     []map[string]any{},
			"has_more": true,
		})
	}))

	items, err := client.FetchAll(context.Background(), "/contacts", nil, true, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, items, 10, "an empty page ends the listing even when has_more claims otherwise")
}

func TestFetchAll_StopsWhenLastItemHasNoID(t *testing.T) {
	calls := 0

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		json.NewEncoder(w).Encode(map[string]any{
			"data":     []map[string]any{{"name": "no id here"}},
			"has_more": true,
		})
	}))

	items, err := client.FetchAll(context.Background(), "/contacts", nil, true, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, calls, "a page without a usable cursor must not be refetched forever")
	assert.Len(t, items, 1)
}

func TestFetchAll_ErrorAbortsWithoutPartialResults(t *testing.T) {
	calls := 0

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		if calls == 1 {
			json.NewEncoder(w).Encode(map[string]any{
				"data":     pageItems(0, 100),
				"has_more": true,
			})
			return
		}

		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"name":"rate_limit_exceeded","message":"Too many requests"}`)
	}))

	items, err := client.FetchAll(context.Background(), "/contacts", nil, true, 0)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Nil(t, items, "a mid-listing failure discards everything fetched so far")
}

func TestFetchAll_DefaultLimitWhenUnset(t *testing.T) {
	var query string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery

		json.NewEncoder(w).Encode(map[string]any{
			"data":     pageItems(0, 10),
			"has_more": false,
		})
	}))

	_, err := client.FetchAll(context.Background(), "/domains", nil, false, 0)

	require.NoError(t, err)
	assert.Equal(t, "limit=50", query)
}
