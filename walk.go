package client

import (
	"context"
	"errors"
)

// ErrStopWalk may be returned by a walk callback to end the walk early
// without error.
var ErrStopWalk = errors.New("stop walk")

// ErrWalkLimit is returned when a walk reached the page limit set with
// WithMaxWalkPages before the listing ran out.
var ErrWalkLimit = errors.New("walk stopped at page limit")

type listFunc func(ctx context.Context, id string, paging Paging) (*ResponseList, error)

// WalkFollowers calls fn for every follower of id, page by page, starting at
// paging.Page (1 when unset). The walk ends at the first empty page or the
// first page shorter than paging.Count.
func (c *Client) WalkFollowers(ctx context.Context, id string, paging Paging, fn func(User) error) error {
	return c.walk(ctx, "followers", c.GetUserFollowers, id, paging, fn)
}

// WalkFriends is WalkFollowers for the accounts id follows.
func (c *Client) WalkFriends(ctx context.Context, id string, paging Paging, fn func(User) error) error {
	return c.walk(ctx, "friends", c.GetUserFriends, id, paging, fn)
}

func (c *Client) walk(ctx context.Context, listing string, list listFunc, id string, paging Paging, fn func(User) error) error {
	if paging.Page <= 0 {
		paging.Page = 1
	}
	for n := 0; n < c.maxWalkPages; n++ {
		page, err := list(ctx, id, paging)
		if err != nil {
			return err
		}
		walkPagesTotal.WithLabelValues(listing).Inc()

		for _, u := range page.Users {
			if err := fn(u); err != nil {
				if errors.Is(err, ErrStopWalk) {
					return nil
				}
				return err
			}
		}
		if page.Len() == 0 || (paging.Count > 0 && page.Len() < paging.Count) {
			return nil
		}
		paging.Page++
	}
	return ErrWalkLimit
}
