package vk

import (
	"context"
	"net/url"
	"strconv"

	apperrors "vkgraph/pkg/errors"
)

// friendsPage is the envelope payload of friends.get.
type friendsPage struct {
	Count int       `json:"count"`
	Items []Profile `json:"items"`
}

// FetchProfile looks up a single profile by numeric id or screen name.
// The second return value marks the private-profile sentinel, in which
// case the returned profile is empty.
func (c *Client) FetchProfile(ctx context.Context, ref string) (Profile, bool, error) {
	params := url.Values{}
	params.Set("user_ids", ref)
	params.Set("fields", ProfileFields)

	res, err := c.Call(ctx, "users.get", params, CredentialUser)
	if err != nil {
		return Profile{}, false, err
	}
	if res.Private {
		return Profile{}, true, nil
	}

	var profiles []Profile
	if err := res.Decode("users.get", &profiles); err != nil {
		return Profile{}, false, err
	}
	if len(profiles) == 0 {
		return Profile{}, false, apperrors.NewUnexpectedShape("users.get", "empty profile list", nil)
	}
	return profiles[0], false, nil
}

// FetchFriends returns up to limit friend profiles of the given user,
// in API order. A private owner yields an empty list, not an error.
func (c *Client) FetchFriends(ctx context.Context, userID int64, limit int) ([]Profile, error) {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))
	params.Set("fields", ProfileFields)
	params.Set("count", strconv.Itoa(limit))

	res, err := c.Call(ctx, "friends.get", params, CredentialUser)
	if err != nil {
		return nil, err
	}
	if res.Private {
		return nil, nil
	}

	var page friendsPage
	if err := res.Decode("friends.get", &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}
