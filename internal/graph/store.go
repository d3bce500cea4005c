package graph

import (
	"context"

	"vkgraph/internal/vk"
	apperrors "vkgraph/pkg/errors"
	"vkgraph/pkg/logger"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Store handles all Neo4j database operations. Every write is
// idempotent: nodes and edges are merged by their identity keys and
// mutable properties are overwritten, so re-running a crawl does not
// duplicate anything.
//
// Writes are best-effort: a failed write is logged with its
// identifiers and swallowed, and the crawl proceeds as if the write
// had no effect.
type Store struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewStore creates a store on an existing driver.
func NewStore(driver neo4j.DriverWithContext) *Store {
	return &Store{
		driver: driver,
		logger: logger.Get(),
	}
}

// Connect creates a driver for the given URI, verifies connectivity
// and wraps it in a Store.
func Connect(ctx context.Context, uri, user, password string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	return NewStore(driver), nil
}

// Close closes the Neo4j driver connection.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// UpsertUser merges a User node by id and overwrites its properties.
func (s *Store) UpsertUser(ctx context.Context, u vk.User) {
	query := `
		MERGE (u:User {id: $id})
		SET u.screen_name = $screen_name,
		    u.name = $name,
		    u.sex = $sex,
		    u.home_town = $home_town,
		    u.friends_count = $friends_count,
		    u.subscriptions_count = $subscriptions_count
	`
	err := s.write(ctx, query, map[string]interface{}{
		"id":                  u.ID,
		"screen_name":         u.ScreenName,
		"name":                u.Name,
		"sex":                 u.Sex,
		"home_town":           u.HomeTown,
		"friends_count":       u.FriendsCount,
		"subscriptions_count": u.SubscriptionsCount,
	})
	if err != nil {
		s.logger.Error("failed to upsert user node",
			zap.Int64("user_id", u.ID),
			zap.Error(err),
		)
	}
}

// UpsertGroup merges a Group node by id and overwrites its properties.
func (s *Store) UpsertGroup(ctx context.Context, g vk.Group) {
	query := `
		MERGE (g:Group {id: $id})
		SET g.name = $name,
		    g.members_count = $members_count
	`
	err := s.write(ctx, query, map[string]interface{}{
		"id":            g.ID,
		"name":          g.Name,
		"members_count": g.MembersCount,
	})
	if err != nil {
		s.logger.Error("failed to upsert group node",
			zap.Int64("group_id", g.ID),
			zap.Error(err),
		)
	}
}

// UpsertFriendEdge merges a directed FRIEND edge between two existing
// User nodes. Re-creating the edge is a no-op.
func (s *Store) UpsertFriendEdge(ctx context.Context, fromID, toID int64) {
	query := `
		MATCH (u1:User {id: $from_id}), (u2:User {id: $to_id})
		MERGE (u1)-[:FRIEND]->(u2)
	`
	err := s.write(ctx, query, map[string]interface{}{
		"from_id": fromID,
		"to_id":   toID,
	})
	if err != nil {
		s.logger.Error("failed to upsert FRIEND edge",
			zap.Int64("from_id", fromID),
			zap.Int64("to_id", toID),
			zap.Error(err),
		)
	}
}

// UpsertSubscriptionEdge merges a directed SUBSCRIBED_TO edge from a
// User to a Group, both matched by id.
func (s *Store) UpsertSubscriptionEdge(ctx context.Context, userID, groupID int64) {
	query := `
		MATCH (u:User {id: $user_id}), (g:Group {id: $group_id})
		MERGE (u)-[:SUBSCRIBED_TO]->(g)
	`
	err := s.write(ctx, query, map[string]interface{}{
		"user_id":  userID,
		"group_id": groupID,
	})
	if err != nil {
		s.logger.Error("failed to upsert SUBSCRIBED_TO edge",
			zap.Int64("user_id", userID),
			zap.Int64("group_id", groupID),
			zap.Error(err),
		)
	}
}

// RunQuery executes an arbitrary read query and collects all records.
func (s *Store) RunQuery(ctx context.Context, query string, params map[string]interface{}) ([]*neo4j.Record, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed(query, err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed(query, err)
	}
	return records, nil
}

// Wipe deletes every node and edge in the database.
func (s *Store) Wipe(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
	if err != nil {
		return apperrors.NewGraphQueryFailed("MATCH (n) DETACH DELETE n", err)
	}
	s.logger.Info("graph database wiped")
	return nil
}

// write runs a single write query in its own session. Each store
// operation is one isolated transaction; there is no multi-statement
// transaction spanning a user's full set of writes.
func (s *Store) write(ctx context.Context, query string, params map[string]interface{}) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.Run(ctx, query, params)
	return err
}
