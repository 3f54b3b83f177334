package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestBackend serves handler and returns a Client pointed at it.
func setupTestBackend(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Config{
		BaseURL:    srv.URL,
		AnonKey:    "anon-key",
		HTTPClient: srv.Client(),
	})
}

type row struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

func TestGet_ComposesQueryParameters(t *testing.T) {
	var gotURL string
	var gotHeaders http.Header
	client := setupTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotHeaders = r.Header.Clone()
		_ = json.NewEncoder(w).Encode([]row{{ID: "1", Title: "Apple"}})
	})

	var rows []row
	err := client.From("products").
		Select("*").
		Eq("category", "fruit").
		Neq("id", "9").
		Order("created_at", false).
		Limit(5).
		Get(context.Background(), &rows)
	require.NoError(t, err)

	assert.Contains(t, gotURL, "/rest/v1/products?")
	assert.Contains(t, gotURL, "select=%2A")
	assert.Contains(t, gotURL, "category=eq.fruit")
	assert.Contains(t, gotURL, "id=neq.9")
	assert.Contains(t, gotURL, "order=created_at.desc")
	assert.Contains(t, gotURL, "limit=5")

	assert.Equal(t, "anon-key", gotHeaders.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", gotHeaders.Get("Authorization"))

	require.Len(t, rows, 1)
	assert.Equal(t, "Apple", rows[0].Title)
}

func TestGet_SingleSetsAcceptHeader(t *testing.T) {
	client := setupTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(row{ID: "1", Title: "Apple"})
	})

	var got row
	err := client.From("products").Eq("id", "1").Single().Get(context.Background(), &got)
	require.NoError(t, err)
	assert.Equal(t, "Apple", got.Title)
}

func TestGet_NoRowsSingleIsNotFound(t *testing.T) {
	client := setupTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "JSON object requested, multiple (or no) rows returned",
			"code":    "PGRST116",
		})
	})

	var got row
	err := client.From("products").Eq("id", "missing").Single().Get(context.Background(), &got)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGet_BackendErrorIsTyped(t *testing.T) {
	client := setupTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "permission denied", "code": "42501"})
	})

	var rows []row
	err := client.From("products").Get(context.Background(), &rows)

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusForbidden, re.Status)
	assert.Equal(t, "42501", re.Code)
	assert.Contains(t, re.Message, "permission denied")
	assert.False(t, IsNotFound(err))
}

func TestCount_ParsesContentRange(t *testing.T) {
	client := setupTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		w.Header().Set("Content-Range", "0-24/3573")
	})

	n, err := client.From("orders").Select("*").Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3573, n)
}

func TestCount_EmptyTable(t *testing.T) {
	client := setupTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Range", "*/0")
	})

	n, err := client.From("orders").Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestInsert_ReturnsRepresentationWhenAsked(t *testing.T) {
	client := setupTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var sent row
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		sent.ID = "generated"
		_ = json.NewEncoder(w).Encode([]row{sent})
	})

	var created []row
	err := client.From("products").Insert(context.Background(), row{Title: "Mango", Price: 3}, &created)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "generated", created[0].ID)
	assert.Equal(t, "Mango", created[0].Title)
}

func TestInsert_MinimalWhenNoDest(t *testing.T) {
	client := setupTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.From("cart_items").Insert(context.Background(), row{Title: "x"}, nil)
	require.NoError(t, err)
}

func TestUpdate_PatchesFilteredRows(t *testing.T) {
	var gotURL, gotMethod string
	var gotBody map[string]int
	client := setupTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.From("cart_items").Eq("id", "line-1").Update(context.Background(), map[string]int{"quantity": 4})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Contains(t, gotURL, "id=eq.line-1")
	assert.Equal(t, 4, gotBody["quantity"])
}

func TestDelete_TargetsFilteredRows(t *testing.T) {
	var gotURL, gotMethod string
	client := setupTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.From("cart_items").Eq("user_id", "user-1").Delete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Contains(t, gotURL, "user_id=eq.user-1")
}
