package graph

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Analytic query names accepted by RunAnalytics.
const (
	QueryTotalUsers    = "total_users"
	QueryTotalGroups   = "total_groups"
	QueryTopUsers      = "top_users"
	QueryTopGroups     = "top_groups"
	QueryMutualFriends = "mutual_friends"
)

// AllQueries lists every analytic query in execution order.
var AllQueries = []string{
	QueryTotalUsers,
	QueryTotalGroups,
	QueryTopUsers,
	QueryTopGroups,
	QueryMutualFriends,
}

// IsKnownQuery reports whether name is a recognized analytic query.
func IsKnownQuery(name string) bool {
	for _, q := range AllQueries {
		if q == name {
			return true
		}
	}
	return false
}

// RunAnalytics executes the named analytic query and prints its
// results to out. An empty name runs all queries in order. A failed
// read is logged and the remaining queries still run.
func (s *Store) RunAnalytics(ctx context.Context, name string, out io.Writer) error {
	queries := AllQueries
	if name != "" {
		if !IsKnownQuery(name) {
			return fmt.Errorf("unknown query type: %s", name)
		}
		queries = []string{name}
	}

	for _, q := range queries {
		switch q {
		case QueryTotalUsers:
			s.printTotalUsers(ctx, out)
		case QueryTotalGroups:
			s.printTotalGroups(ctx, out)
		case QueryTopUsers:
			s.printTopUsers(ctx, out)
		case QueryTopGroups:
			s.printTopGroups(ctx, out)
		case QueryMutualFriends:
			s.printMutualFriends(ctx, out)
		}
	}
	return nil
}

func (s *Store) printTotalUsers(ctx context.Context, out io.Writer) {
	records, err := s.RunQuery(ctx, "MATCH (u:User) RETURN count(u) as total_users", nil)
	if err != nil {
		s.logger.Error("total_users query failed", zap.Error(err))
		return
	}
	if len(records) > 0 {
		fmt.Fprintf(out, "Total users: %d\n", getInt64(records[0], "total_users"))
	}
}

func (s *Store) printTotalGroups(ctx context.Context, out io.Writer) {
	records, err := s.RunQuery(ctx, "MATCH (g:Group) RETURN count(DISTINCT g) as total_groups", nil)
	if err != nil {
		s.logger.Error("total_groups query failed", zap.Error(err))
		return
	}
	if len(records) > 0 {
		fmt.Fprintf(out, "Total groups: %d\n", getInt64(records[0], "total_groups"))
	}
}

func (s *Store) printTopUsers(ctx context.Context, out io.Writer) {
	query := `
		MATCH (u:User)-[:FRIEND]->(f:User)
		RETURN u.id as user_id, u.name as name, count(f) as friends_count
		ORDER BY friends_count DESC
		LIMIT 5
	`
	records, err := s.RunQuery(ctx, query, nil)
	if err != nil {
		s.logger.Error("top_users query failed", zap.Error(err))
		return
	}
	fmt.Fprintln(out, "\nTop 5 users by friend count:")
	for _, record := range records {
		fmt.Fprintf(out, "ID: %d, Name: %s, Friends: %d\n",
			getInt64(record, "user_id"),
			getString(record, "name"),
			getInt64(record, "friends_count"),
		)
	}
}

func (s *Store) printTopGroups(ctx context.Context, out io.Writer) {
	query := `
		MATCH (g:Group)
		WHERE g.members_count IS NOT NULL
		RETURN g.id as group_id, g.name as name, g.members_count as members_count
		ORDER BY g.members_count DESC
		LIMIT 5
	`
	records, err := s.RunQuery(ctx, query, nil)
	if err != nil {
		s.logger.Error("top_groups query failed", zap.Error(err))
		return
	}
	fmt.Fprintln(out, "\nTop 5 groups by member count:")
	for _, record := range records {
		fmt.Fprintf(out, "ID: %d, Name: %s, Members: %d\n",
			getInt64(record, "group_id"),
			getString(record, "name"),
			getInt64(record, "members_count"),
		)
	}
}

func (s *Store) printMutualFriends(ctx context.Context, out io.Writer) {
	query := `
		MATCH (u1:User)-[:FRIEND]->(u2:User)
		WHERE (u2)-[:FRIEND]->(u1) AND u1.id < u2.id
		RETURN u1.id as user1_id, u1.name as user1_name, u2.id as user2_id, u2.name as user2_name
	`
	records, err := s.RunQuery(ctx, query, nil)
	if err != nil {
		s.logger.Error("mutual_friends query failed", zap.Error(err))
		return
	}
	fmt.Fprintln(out, "\nMutually friending user pairs:")
	for _, record := range records {
		fmt.Fprintf(out, "%s (ID: %d) and %s (ID: %d)\n",
			getString(record, "user1_name"),
			getInt64(record, "user1_id"),
			getString(record, "user2_name"),
			getInt64(record, "user2_id"),
		)
	}
}
