// Package graph provides read-only access to the curriculum knowledge graph
// in Neo4j. Handlers talk to the typed Store; the Querier interface exists so
// tests can substitute a fake backend.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	apperrors "github.com/dut-ailab/advisor-go/internal/errors"
)

// Record is one row of a Cypher result, keyed by return alias.
type Record = map[string]any

// Querier runs a parameterized Cypher query and returns its rows.
type Querier interface {
	RunQuery(ctx context.Context, cypher string, params map[string]any) ([]Record, error)
}

// Client is the Neo4j-backed Querier.
type Client struct {
	driver neo4j.DriverWithContext
}

// Connect opens a driver and verifies connectivity before returning.
func Connect(ctx context.Context, uri, username, password string) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	return &Client{driver: driver}, nil
}

// RunQuery executes cypher with params and returns every row as a map.
func (c *Client) RunQuery(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	result, err := neo4j.ExecuteQuery(ctx, c.driver, cypher, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, apperrors.NewGraphError(cypher, err)
	}

	records := make([]Record, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, rec.AsMap())
	}
	return records, nil
}

// Ping verifies the connection is still usable.
func (c *Client) Ping(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

// Close shuts down the underlying driver.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}
