package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/cellar_society/internal/models"
)

// Indexer receives catalog writes from the admin portal.
type Indexer interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

// Searcher resolves a free text query to product ids, best match first.
type Searcher interface {
	SearchProductIDs(ctx context.Context, query string, size int) ([]uint, error)
}

type Index struct {
	ES   *elasticsearch.Client
	Name string
}

type document struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Region      string  `json:"region"`
	Vintage     int     `json:"vintage"`
	Price       string  `json:"price"`
	Alcohol     float64 `json:"alcohol"`
	Description string  `json:"description"`
}

func toDocument(p models.Product) document {
	return document{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Region:      p.Region,
		Vintage:     p.Vintage,
		Price:       p.Price.StringFixed(2),
		Alcohol:     p.Alcohol,
		Description: p.Description,
	}
}

func (ix *Index) IndexProduct(ctx context.Context, p models.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(toDocument(p)); err != nil {
		return fmt.Errorf("encode product %d: %w", p.ID, err)
	}

	res, err := ix.ES.Index(ix.Name, &buf,
		ix.ES.Index.WithContext(ctx),
		ix.ES.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		ix.ES.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index product %d: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index product", res.StatusCode, res.Body)
	}
	return nil
}

func (ix *Index) DeleteProduct(ctx context.Context, id uint) error {
	res, err := ix.ES.Delete(ix.Name, strconv.FormatUint(uint64(id), 10),
		ix.ES.Delete.WithContext(ctx),
		ix.ES.Delete.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return responseError("delete product", res.StatusCode, res.Body)
	}
	return nil
}

func (ix *Index) SearchProductIDs(ctx context.Context, query string, size int) ([]uint, error) {
	if size <= 0 {
		size = 100
	}
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "region", "type", "description"},
				"fuzziness": "AUTO",
			},
		},
		"_source": []string{"id"},
		"size":    size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode search: %w", err)
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Name),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("search products", res.StatusCode, res.Body)
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID uint `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	ids := make([]uint, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}

func responseError(op string, status int, body io.Reader) error {
	msg, _ := io.ReadAll(io.LimitReader(body, 1024))
	return fmt.Errorf("%s: elasticsearch status %d: %s", op, status, bytes.TrimSpace(msg))
}
