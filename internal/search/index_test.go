package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/cellar_society/internal/models"
)

type fakeES struct {
	mu       sync.Mutex
	docs     map[string]map[string]any
	lastBody string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"name":"fake","cluster_name":"test","version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
	case len(parts) == 3 && parts[1] == "_doc" && (r.Method == http.MethodPut || r.Method == http.MethodPost):
		var doc map[string]any
		_ = json.Unmarshal(body, &doc)
		f.docs[parts[2]] = doc
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case len(parts) == 3 && parts[1] == "_doc" && r.Method == http.MethodDelete:
		if _, ok := f.docs[parts[2]]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
			return
		}
		delete(f.docs, parts[2])
		_, _ = io.WriteString(w, `{"result":"deleted"}`)
	case len(parts) == 2 && parts[1] == "_search":
		f.lastBody = string(body)
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":2},"hits":[{"_id":"7","_source":{"id":7}},{"_id":"3","_source":{"id":3}}]}}`)
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"unexpected request"}`)
	}
}

func newTestIndex(t *testing.T) (*fakeES, *Index) {
	t.Helper()
	fake := &fakeES{docs: map[string]map[string]any{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.URL, "", "")
	require.NoError(t, err)
	return fake, &Index{ES: client, Name: "products"}
}

func TestIndex_IndexAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake, ix := newTestIndex(t)

	p := models.Product{ID: 7, Name: "Rioja Reserva", Type: "Red", Region: "Rioja", Vintage: 2016, Price: decimal.RequireFromString("29.9")}
	require.NoError(t, ix.IndexProduct(ctx, p))

	fake.mu.Lock()
	doc := fake.docs["7"]
	fake.mu.Unlock()
	require.NotNil(t, doc)
	assert.Equal(t, "Rioja Reserva", doc["name"])
	assert.Equal(t, "29.90", doc["price"])

	require.NoError(t, ix.DeleteProduct(ctx, 7))
	require.NoError(t, ix.DeleteProduct(ctx, 7), "missing documents are not an error")
}

func TestIndex_SearchProductIDs(t *testing.T) {
	t.Parallel()
	fake, ix := newTestIndex(t)

	ids, err := ix.SearchProductIDs(context.Background(), "rioja", 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 3}, ids)

	fake.mu.Lock()
	body := fake.lastBody
	fake.mu.Unlock()
	assert.Contains(t, body, `"multi_match"`)
	assert.Contains(t, body, `"rioja"`)
}
