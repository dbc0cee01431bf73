// Package graph is the Neo4j adapter. A thin Client wraps the official
// driver so that repositories deal in plain records and mutation counters.
package graph

import (
	"context"
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Client is the minimal contract the repositories need from the graph store.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Record groups key-value pairs returned from the graph engine. Node values
// are flattened to their property maps.
type Record map[string]any

// Counters carries the mutation summary of a write.
type Counters struct {
	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
}

// Result is a simplified, fully buffered query response.
type Result struct {
	Records  []Record
	Counters Counters
}

// Options configures the driver-backed client.
type Options struct {
	URI      string
	Database string
	Username string
	Password string
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")

type driverClient struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewClient connects the official driver. The caller owns the handle and
// must Close it during teardown.
func NewClient(opts Options) (Client, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}
	driver, err := neo4j.NewDriverWithContext(opts.URI, neo4j.BasicAuth(opts.Username, opts.Password, ""))
	if err != nil {
		return nil, err
	}
	return &driverClient{driver: driver, database: opts.Database}, nil
}

func (c *driverClient) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	return c.run(ctx, cypher, params, neo4j.ExecuteQueryWithWritersRouting())
}

func (c *driverClient) ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	return c.run(ctx, cypher, params, neo4j.ExecuteQueryWithReadersRouting())
}

func (c *driverClient) run(ctx context.Context, cypher string, params map[string]any, routing neo4j.ExecuteQueryConfigurationOption) (Result, error) {
	eager, err := neo4j.ExecuteQuery(ctx, c.driver, cypher, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.database),
		routing,
	)
	if err != nil {
		return Result{}, err
	}

	out := Result{Records: make([]Record, 0, len(eager.Records))}
	for _, rec := range eager.Records {
		converted := Record{}
		for key, value := range rec.AsMap() {
			converted[key] = convertValue(value)
		}
		out.Records = append(out.Records, converted)
	}
	if eager.Summary != nil {
		counters := eager.Summary.Counters()
		out.Counters = Counters{
			NodesCreated:         counters.NodesCreated(),
			NodesDeleted:         counters.NodesDeleted(),
			RelationshipsCreated: counters.RelationshipsCreated(),
			RelationshipsDeleted: counters.RelationshipsDeleted(),
		}
	}
	return out, nil
}

func convertValue(value any) any {
	switch v := value.(type) {
	case neo4j.Node:
		return map[string]any(v.Props)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = convertValue(item)
		}
		return out
	default:
		return value
	}
}

func (c *driverClient) VerifyConnectivity(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

func (c *driverClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// record accessors shared by the repositories; graph values come back as
// neo4j's widest types (int64, string) or nil for absent properties.

func recString(rec Record, key string) string {
	if v, ok := rec[key].(string); ok {
		return v
	}
	return ""
}

func recInt64(rec Record, key string) int64 {
	switch v := rec[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}
