package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/lifepath/internal/config"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("neo4j URI is required")

const (
	queryUserConstraint = `CREATE CONSTRAINT user_username_unique IF NOT EXISTS
FOR (u:User) REQUIRE u.username IS UNIQUE`
	queryMergeUser = `MERGE (u:User {username: $username})
ON CREATE SET u.id = $id, u.document = $document, u.created_at = $created_at, u.updated_at = $created_at
RETURN u.id AS id`
	queryUserByUsername = `MATCH (u:User {username: $username}) RETURN u.id AS id, u.document AS document`
	queryUserByID       = `MATCH (u:User {id: $id}) RETURN u.id AS id, u.document AS document`
	queryUpdateDocument = `MATCH (u:User {id: $id})
SET u.document = $document, u.updated_at = $updated_at
RETURN u.id AS id`
)

// GraphClient is the part of a graph database the neo4j store needs.
type GraphClient interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (GraphResult, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (GraphResult, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// GraphResult is a simplified query response.
type GraphResult struct {
	Records []GraphRecord
}

// GraphRecord groups the key-value pairs of one returned row.
type GraphRecord map[string]any

// NewNeo4jClient establishes a Bolt connection using the official driver.
func NewNeo4jClient(ctx context.Context, cfg config.Neo4jConfig) (GraphClient, error) {
	if cfg.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		if cfg.MaxConnections > 0 {
			c.MaxConnectionPoolSize = cfg.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	return &neo4jClient{driver: driver, database: cfg.Database}, nil
}

type neo4jClient struct {
	driver   neo4j.DriverWithContext
	database string
}

func (c *neo4jClient) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (GraphResult, error) {
	return c.run(ctx, neo4j.AccessModeWrite, cypher, params)
}

func (c *neo4jClient) ExecuteRead(ctx context.Context, cypher string, params map[string]any) (GraphResult, error) {
	return c.run(ctx, neo4j.AccessModeRead, cypher, params)
}

func (c *neo4jClient) run(ctx context.Context, mode neo4j.AccessMode, cypher string, params map[string]any) (GraphResult, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   mode,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, cypher, params)
	if err != nil {
		return GraphResult{}, err
	}

	var records []GraphRecord
	for res.Next(ctx) {
		rec := res.Record()
		record := make(GraphRecord, len(rec.Keys))
		for _, key := range rec.Keys {
			value, _ := rec.Get(key)
			record[key] = value
		}
		records = append(records, record)
	}
	if err := res.Err(); err != nil {
		return GraphResult{}, err
	}
	return GraphResult{Records: records}, nil
}

func (c *neo4jClient) VerifyConnectivity(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

func (c *neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// Neo4jStore keeps one :User node per user with the document as a JSON
// string property.
type Neo4jStore struct {
	client GraphClient
	logger *zap.Logger
}

// NewNeo4jStore wraps a connected graph client and makes sure usernames are
// unique, so concurrent registrations merge onto a single node.
func NewNeo4jStore(ctx context.Context, client GraphClient, logger *zap.Logger) (*Neo4jStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := client.ExecuteWrite(ctx, queryUserConstraint, nil); err != nil {
		return nil, fmt.Errorf("create username constraint: %w", err)
	}
	return &Neo4jStore{client: client, logger: logger}, nil
}

// CreateUser merges a node on the username. A node that already existed
// keeps its id, which marks the username as taken.
func (s *Neo4jStore) CreateUser(ctx context.Context, user User) (string, error) {
	user, err := prepareUser(user)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}

	id := uuid.NewString()
	res, err := s.client.ExecuteWrite(ctx, queryMergeUser, map[string]any{
		"id":         id,
		"username":   user.Username,
		"document":   string(data),
		"created_at": user.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	if len(res.Records) == 0 {
		return "", fmt.Errorf("create user: no record returned")
	}
	if stored, _ := res.Records[0]["id"].(string); stored != id {
		return "", fmt.Errorf("%w: %s", ErrUserExists, user.Username)
	}

	s.logger.Debug("created user",
		zap.String("op", "store.neo4j.CreateUser"),
		zap.String("id", id),
	)
	return id, nil
}

// GetUserByUsername looks a user up by username.
func (s *Neo4jStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.getUser(ctx, queryUserByUsername, map[string]any{"username": username})
}

// GetUserByID looks a user up by id.
func (s *Neo4jStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	return s.getUser(ctx, queryUserByID, map[string]any{"id": id})
}

func (s *Neo4jStore) getUser(ctx context.Context, query string, params map[string]any) (*User, error) {
	res, err := s.client.ExecuteRead(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if len(res.Records) == 0 {
		return nil, ErrNotFound
	}
	id, document, err := recordDocument(res.Records[0])
	if err != nil {
		return nil, err
	}
	return decodeUser(id, []byte(document))
}

// UpdateUser reads the document, patches it and writes it back. Concurrent
// updates to the same user are last-write-wins.
func (s *Neo4jStore) UpdateUser(ctx context.Context, id string, update Update) error {
	res, err := s.client.ExecuteRead(ctx, queryUserByID, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("read user: %w", err)
	}
	if len(res.Records) == 0 {
		return ErrNotFound
	}
	_, document, err := recordDocument(res.Records[0])
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		return fmt.Errorf("decode user %s: %w", id, err)
	}
	if err := ApplyUpdate(doc, update); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", id, err)
	}

	res, err = s.client.ExecuteWrite(ctx, queryUpdateDocument, map[string]any{
		"id":         id,
		"document":   string(data),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	if len(res.Records) == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated user",
		zap.String("op", "store.neo4j.UpdateUser"),
		zap.String("id", id),
	)
	return nil
}

// Close releases the driver.
func (s *Neo4jStore) Close() error {
	return s.client.Close(context.Background())
}

func recordDocument(record GraphRecord) (string, string, error) {
	id, ok := record["id"].(string)
	if !ok {
		return "", "", fmt.Errorf("user record has no id")
	}
	document, ok := record["document"].(string)
	if !ok {
		return "", "", fmt.Errorf("user %s has no document", id)
	}
	return id, document, nil
}
