package crawler

import (
	"context"
	"strconv"

	"vkgraph/internal/vk"
	"vkgraph/pkg/logger"

	"go.uber.org/zap"
)

// API fetches profiles and friend lists from the remote social graph.
// Implemented by *vk.Client.
type API interface {
	FetchProfile(ctx context.Context, ref string) (vk.Profile, bool, error)
	FetchFriends(ctx context.Context, userID int64, limit int) ([]vk.Profile, error)
}

// Subscriptions enumerates a user's group memberships. Implemented by
// *vk.SubscriptionCollector.
type Subscriptions interface {
	Collect(ctx context.Context, userID int64, limit int) ([]vk.Group, int, error)
}

// Store persists crawl results. All operations are best-effort
// upserts. Implemented by *graph.Store.
type Store interface {
	UpsertUser(ctx context.Context, u vk.User)
	UpsertGroup(ctx context.Context, g vk.Group)
	UpsertFriendEdge(ctx context.Context, fromID, toID int64)
	UpsertSubscriptionEdge(ctx context.Context, userID, groupID int64)
}

// Limits bound a crawl.
type Limits struct {
	Depth         int // recursion distance from the root user, root = 1
	Friends       int // friends fetched per user
	Subscriptions int // group subscriptions kept per user
}

// Crawler walks the social graph depth-first from a root user and
// materializes it in the store. The traversal uses an explicit work
// stack with a single shared visited set, so every user id is fetched
// and expanded at most once per run regardless of friendship cycles.
type Crawler struct {
	api    API
	subs   Subscriptions
	store  Store
	limits Limits
	logger *zap.Logger
}

// item is one pending traversal step.
type item struct {
	id    int64
	depth int
}

// New creates a crawler over the given collaborators.
func New(api API, subs Subscriptions, store Store, limits Limits) *Crawler {
	return &Crawler{
		api:    api,
		subs:   subs,
		store:  store,
		limits: limits,
		logger: logger.Get(),
	}
}

// Run crawls the graph starting from root, which may be a numeric user
// id or a screen name. A failed root profile fetch aborts the whole
// run; every later failure is contained to its own user.
func (c *Crawler) Run(ctx context.Context, root string) error {
	profile, private, err := c.api.FetchProfile(ctx, root)
	if err != nil {
		c.logger.Error("failed to fetch root user profile",
			zap.String("root", root),
			zap.Error(err),
		)
		return err
	}
	if private {
		c.logger.Warn("root user profile is private, nothing to crawl",
			zap.String("root", root),
		)
		return nil
	}

	visited := map[int64]bool{profile.ID: true}
	var stack []item
	c.processUser(ctx, profile, 1, visited, &stack)

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		p, priv, err := c.api.FetchProfile(ctx, strconv.FormatInt(it.id, 10))
		if err != nil {
			c.logger.Error("failed to fetch user profile, skipping",
				zap.Int64("user_id", it.id),
				zap.Error(err),
			)
			continue
		}
		if priv {
			continue
		}
		c.processUser(ctx, p, it.depth, visited, &stack)
	}

	return nil
}

// processUser handles one crawl step: persist the user node, its
// non-private friends with FRIEND edges and its resolved group
// subscriptions, refresh the user node with final counts, and finally
// schedule unvisited non-private friends for expansion while depth
// allows.
func (c *Crawler) processUser(ctx context.Context, profile vk.Profile, depth int, visited map[int64]bool, stack *[]item) {
	user := vk.NormalizeProfile(profile)

	// The edge upserts MATCH both endpoints, so the current user's
	// node must exist before any of its edges are written. The final
	// upsert below refreshes the same node with the gathered counts.
	c.store.UpsertUser(ctx, user)

	friendsCount := 0
	var expand []int64

	friends, err := c.api.FetchFriends(ctx, user.ID, c.limits.Friends)
	if err != nil {
		c.logger.Error("failed to fetch friends",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	} else {
		friendsCount = len(friends)
		for _, raw := range friends {
			friend := vk.NormalizeProfile(raw)
			if friend.IsPrivate {
				continue
			}
			c.store.UpsertUser(ctx, friend)
			c.store.UpsertFriendEdge(ctx, user.ID, friend.ID)
			expand = append(expand, friend.ID)
		}
	}

	subscriptionsCount := 0
	groups, total, err := c.subs.Collect(ctx, user.ID, c.limits.Subscriptions)
	if err != nil {
		c.logger.Error("failed to fetch subscriptions",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	} else {
		subscriptionsCount = total
		for _, g := range groups {
			c.store.UpsertGroup(ctx, g)
			c.store.UpsertSubscriptionEdge(ctx, user.ID, g.ID)
		}
	}

	user.FriendsCount = friendsCount
	user.SubscriptionsCount = subscriptionsCount
	c.store.UpsertUser(ctx, user)
	c.logger.Info("user crawled",
		zap.Int64("user_id", user.ID),
		zap.Int("depth", depth),
		zap.Int("friends", friendsCount),
		zap.Int("subscriptions", subscriptionsCount),
	)

	if depth >= c.limits.Depth {
		return
	}
	// Push in reverse so the LIFO stack expands friends in API order.
	for i := len(expand) - 1; i >= 0; i-- {
		id := expand[i]
		if visited[id] {
			continue
		}
		visited[id] = true
		*stack = append(*stack, item{id: id, depth: depth + 1})
	}
}
