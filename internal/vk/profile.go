package vk

import "strings"

// NormalizeProfile maps a raw profile record into the canonical User
// representation.
//
// Name joins the first and last name fields, trimming whatever is
// missing. HomeTown prefers the explicit home_town field and falls
// back to the city title. IsPrivate is set for deactivated accounts
// and for closed profiles the requesting token cannot access.
func NormalizeProfile(p Profile) User {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)

	homeTown := p.HomeTown
	if homeTown == "" && p.City != nil {
		homeTown = p.City.Title
	}

	return User{
		ID:         p.ID,
		ScreenName: p.ScreenName,
		Name:       name,
		Sex:        p.Sex,
		HomeTown:   homeTown,
		IsPrivate:  p.Deactivated != "" || (p.IsClosed && !p.CanAccessClosed),
	}
}
