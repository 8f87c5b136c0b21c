// Package search mirrors the catalog into Elasticsearch and answers
// storefront product queries from it.
package search

import (
	"context"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/cellar_society/pkg/logging"
)

func NewClient(ctx context.Context, addr, user, password string) (*elasticsearch.Client, error) {
	l := logging.FromContext(ctx).With("component", "elasticsearch")
	l.Info("es_connecting", "addr", addr)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		l.Error("es_info_failed", "status", res.StatusCode, "body", string(body))
		return nil, fmt.Errorf("elasticsearch info: %s", res.Status())
	}

	l.Info("es_connected")
	return client, nil
}
