package vk

// ProfileFields is the field set requested from users.get and friends.get.
const ProfileFields = "screen_name,sex,home_town,city,first_name,last_name"

// Profile is a raw user record as returned by the VK API.
type Profile struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ScreenName      string `json:"screen_name"`
	Sex             int    `json:"sex"`
	HomeTown        string `json:"home_town"`
	City            *City  `json:"city,omitempty"`
	Deactivated     string `json:"deactivated,omitempty"`
	IsClosed        bool   `json:"is_closed"`
	CanAccessClosed bool   `json:"can_access_closed"`
}

// City is the city sub-record of a profile.
type City struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// User is the canonical user representation persisted to the graph.
// IsPrivate is derived from the raw profile and governs whether the
// crawler expands the user; it is not persisted as a node property.
type User struct {
	ID                 int64
	ScreenName         string
	Name               string
	Sex                int
	HomeTown           string
	FriendsCount       int
	SubscriptionsCount int
	IsPrivate          bool
}

// Group is a community record. IsClosed uses the VK convention:
// 0 = open, 1 = closed, 2 = private.
type Group struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MembersCount int    `json:"members_count"`
	IsClosed     int    `json:"is_closed"`
}
