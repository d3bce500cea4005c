package vk

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"vkgraph/pkg/logger"

	"go.uber.org/zap"
)

const (
	// subscriptionPageSize is the fixed page size for
	// users.getSubscriptions.
	subscriptionPageSize = 200
	// groupChunkSize is the maximum number of ids per groups.getById
	// call.
	groupChunkSize = 500
)

// subscriptionPage is the envelope payload of users.getSubscriptions
// with filter=groups.
type subscriptionPage struct {
	Count int     `json:"count"`
	Items []Group `json:"items"`
}

// SubscriptionCollector paginates a user's group memberships and
// resolves group metadata in bounded-size batches.
type SubscriptionCollector struct {
	client *Client
	logger *zap.Logger
}

// NewSubscriptionCollector creates a collector on top of the client.
func NewSubscriptionCollector(client *Client) *SubscriptionCollector {
	return &SubscriptionCollector{
		client: client,
		logger: logger.Get(),
	}
}

// Collect pages through the user's group subscriptions, keeps only
// publicly joinable groups, truncates the id list to limit and
// resolves group details in chunks via the service credential. It
// returns the resolved groups in accumulation order together with the
// API-reported total subscription count.
//
// A chunk whose response does not decode as a group list is skipped
// with a warning; results from the other chunks are still returned.
func (sc *SubscriptionCollector) Collect(ctx context.Context, userID int64, limit int) ([]Group, int, error) {
	var groupIDs []string
	total := 0
	offset := 0

	for {
		params := url.Values{}
		params.Set("user_id", strconv.FormatInt(userID, 10))
		params.Set("extended", "1")
		params.Set("offset", strconv.Itoa(offset))
		params.Set("count", strconv.Itoa(subscriptionPageSize))
		params.Set("filter", "groups")

		res, err := sc.client.Call(ctx, "users.getSubscriptions", params, CredentialUser)
		if err != nil {
			return nil, 0, err
		}
		if res.Private {
			return nil, 0, nil
		}

		var page subscriptionPage
		if err := res.Decode("users.getSubscriptions", &page); err != nil {
			sc.logger.Warn("unexpected response shape for users.getSubscriptions",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			break
		}

		total = page.Count
		for _, g := range page.Items {
			if g.IsClosed == 0 {
				groupIDs = append(groupIDs, strconv.FormatInt(g.ID, 10))
			}
		}

		if len(page.Items) < subscriptionPageSize || len(groupIDs) >= limit {
			break
		}
		offset += subscriptionPageSize
	}

	if len(groupIDs) > limit {
		groupIDs = groupIDs[:limit]
	}

	groups := make([]Group, 0, len(groupIDs))
	for start := 0; start < len(groupIDs); start += groupChunkSize {
		end := min(start+groupChunkSize, len(groupIDs))
		chunk := groupIDs[start:end]

		params := url.Values{}
		params.Set("group_ids", strings.Join(chunk, ","))
		params.Set("fields", "members_count")

		// The service token is used here: group metadata does not
		// depend on the requesting user's own permissions.
		res, err := sc.client.Call(ctx, "groups.getById", params, CredentialService)
		if err != nil {
			return groups, total, err
		}

		var resolved []Group
		if err := res.Decode("groups.getById", &resolved); err != nil {
			sc.logger.Warn("unexpected response shape for groups.getById, skipping chunk",
				zap.Int("chunk_size", len(chunk)),
				zap.Error(err),
			)
			continue
		}
		groups = append(groups, resolved...)
	}

	return groups, total, nil
}
