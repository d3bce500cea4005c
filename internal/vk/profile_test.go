package vk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    User
	}{
		{
			name: "full profile",
			profile: Profile{
				ID:         1,
				FirstName:  "Ivan",
				LastName:   "Petrov",
				ScreenName: "ivanp",
				Sex:        2,
				HomeTown:   "Kazan",
			},
			want: User{
				ID:         1,
				ScreenName: "ivanp",
				Name:       "Ivan Petrov",
				Sex:        2,
				HomeTown:   "Kazan",
			},
		},
		{
			name: "missing last name is trimmed",
			profile: Profile{
				ID:        2,
				FirstName: "Anna",
			},
			want: User{ID: 2, Name: "Anna"},
		},
		{
			name:    "missing both names yields empty name",
			profile: Profile{ID: 3},
			want:    User{ID: 3},
		},
		{
			name: "city title used when home_town empty",
			profile: Profile{
				ID:        4,
				FirstName: "Olga",
				City:      &City{ID: 2, Title: "Saint Petersburg"},
			},
			want: User{ID: 4, Name: "Olga", HomeTown: "Saint Petersburg"},
		},
		{
			name: "explicit home_town wins over city",
			profile: Profile{
				ID:        5,
				FirstName: "Olga",
				HomeTown:  "Tver",
				City:      &City{ID: 1, Title: "Moscow"},
			},
			want: User{ID: 5, Name: "Olga", HomeTown: "Tver"},
		},
		{
			name: "deactivated account is private",
			profile: Profile{
				ID:          6,
				FirstName:   "Deleted",
				Deactivated: "banned",
			},
			want: User{ID: 6, Name: "Deleted", IsPrivate: true},
		},
		{
			name: "closed profile without access is private",
			profile: Profile{
				ID:        7,
				FirstName: "Closed",
				IsClosed:  true,
			},
			want: User{ID: 7, Name: "Closed", IsPrivate: true},
		},
		{
			name: "closed profile with access is not private",
			profile: Profile{
				ID:              8,
				FirstName:       "Friendly",
				IsClosed:        true,
				CanAccessClosed: true,
			},
			want: User{ID: 8, Name: "Friendly"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeProfile(tt.profile))
		})
	}
}
