package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// User is a remote account profile as returned by /users/show.json and the
// follower/friend listings.
type User struct {
	ID                        ID              `json:"id"`
	UniqueID                  string          `json:"unique_id"`
	Name                      string          `json:"name"`
	ScreenName                string          `json:"screen_name"`
	Location                  string          `json:"location"`
	Gender                    string          `json:"gender"`
	Birthday                  string          `json:"birthday"`
	Description               string          `json:"description"`
	ProfileImageURL           string          `json:"profile_image_url"`
	ProfileImageURLLarge      string          `json:"profile_image_url_large"`
	URL                       string          `json:"url"`
	Protected                 bool            `json:"protected"`
	FollowersCount            int             `json:"followers_count"`
	FriendsCount              int             `json:"friends_count"`
	FavouritesCount           int             `json:"favourites_count"`
	StatusesCount             int             `json:"statuses_count"`
	PhotoCount                int             `json:"photo_count"`
	Following                 bool            `json:"following"`
	Notifications             bool            `json:"notifications"`
	CreatedAt                 Time            `json:"created_at,omitzero"`
	UTCOffset                 int             `json:"utc_offset"`
	ProfileBackgroundColor    string          `json:"profile_background_color"`
	ProfileTextColor          string          `json:"profile_text_color"`
	ProfileLinkColor          string          `json:"profile_link_color"`
	ProfileSidebarFillColor   string          `json:"profile_sidebar_fill_color"`
	ProfileSidebarBorderColor string          `json:"profile_sidebar_border_color"`
	ProfileBackgroundImageURL string          `json:"profile_background_image_url"`
	ProfileBackgroundTile     bool            `json:"profile_background_tile"`
	Status                    json.RawMessage `json:"status,omitempty"`
}

// ErrMissingID is returned when a decoded user carries no identifier.
var ErrMissingID = errors.New("user object without id")

// Validate rejects partially populated users.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrMissingID
	}
	return nil
}

// ID is an account identifier. Services in this family send ids either as
// strings or as bare numbers; both decode without loss of digits.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier verbatim.
func (id ID) String() string { return string(id) }

// TimeLayout is the timestamp layout used in created_at fields,
// e.g. "Sat Jun 09 23:54:23 +0000 2007".
const TimeLayout = time.RubyDate

// Time decodes and re-encodes timestamps in TimeLayout.
type Time struct {
	time.Time
}

// UnmarshalJSON parses TimeLayout, falling back to RFC 3339.
func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		if parsed, err = time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("created_at: %w", err)
		}
	}
	t.Time = parsed
	return nil
}

// MarshalJSON writes TimeLayout.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(TimeLayout))
}
