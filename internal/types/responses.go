package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ------------------------------
// Response Types
// ------------------------------

// RateLimitStatus echoes the X-RateLimit-* headers of a response.
type RateLimitStatus struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

// ResponseList is an ordered page of users plus whatever paging metadata the
// server sent. Users keeps server order.
type ResponseList struct {
	Users          []User `json:"users"`
	TotalCount     *int   `json:"total_count,omitempty"`
	NextCursor     string `json:"next_cursor,omitempty"`
	PreviousCursor string `json:"previous_cursor,omitempty"`

	RateLimit   *RateLimitStatus `json:"-"`
	AccessLevel string           `json:"-"`
}

// Len returns the number of users on the page.
func (l *ResponseList) Len() int { return len(l.Users) }

// wrappedList is the object form of a listing response.
type wrappedList struct {
	Users          *[]User `json:"users"`
	TotalCount     *int    `json:"total_count"`
	NextCursor     *ID     `json:"next_cursor"`
	PreviousCursor *ID     `json:"previous_cursor"`
}

// UnmarshalJSON accepts either a bare array of users or an object carrying a
// users array and optional cursor fields.
func (l *ResponseList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("empty user list")
	}
	switch b[0] {
	case '[':
		var users []User
		if err := json.Unmarshal(b, &users); err != nil {
			return err
		}
		*l = ResponseList{Users: users}
		return nil
	case '{':
		var w wrappedList
		if err := json.Unmarshal(b, &w); err != nil {
			return err
		}
		if w.Users == nil {
			return fmt.Errorf("user list object without users field")
		}
		*l = ResponseList{Users: *w.Users, TotalCount: w.TotalCount}
		if w.NextCursor != nil {
			l.NextCursor = w.NextCursor.String()
		}
		if w.PreviousCursor != nil {
			l.PreviousCursor = w.PreviousCursor.String()
		}
		return nil
	default:
		return fmt.Errorf("unexpected user list token %q", b[0])
	}
}

// Validate rejects lists containing partially populated users.
func (l *ResponseList) Validate() error {
	for i := range l.Users {
		if err := l.Users[i].Validate(); err != nil {
			return fmt.Errorf("users[%d]: %w", i, err)
		}
	}
	return nil
}

// ApplyHeaders copies response metadata from h.
func (l *ResponseList) ApplyHeaders(h http.Header) {
	l.RateLimit = ParseRateLimit(h)
	l.AccessLevel = h.Get("X-Access-Level")
}

// ParseRateLimit reads X-RateLimit-Limit, -Remaining and -Reset (unix
// seconds). It returns nil unless all three are present and numeric.
func ParseRateLimit(h http.Header) *RateLimitStatus {
	limit, err := strconv.Atoi(h.Get("X-RateLimit-Limit"))
	if err != nil {
		return nil
	}
	remaining, err := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if err != nil {
		return nil
	}
	reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return nil
	}
	return &RateLimitStatus{Limit: limit, Remaining: remaining, Reset: time.Unix(reset, 0).UTC()}
}
