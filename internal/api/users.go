package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fanfou-go/client/internal/types"
)

const (
	ShowUserPath       = "/users/show.json"
	UsersFollowersPath = "/users/followers.json"
	UsersFriendsPath   = "/users/friends.json"
)

// ShowUser retrieves the profile of userID.
func ShowUser(ctx context.Context, hc HTTPClient, baseURL, userID string) (*types.User, error) {
	// Identifier validity is decided by the server.
	req := Request{
		Operation: "show_user",
		Path:      ShowUserPath,
		Query:     url.Values{"id": {userID}},
	}
	var user types.User
	if _, err := Execute(ctx, hc, baseURL, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UsersFollowers retrieves one page of accounts following id.
func UsersFollowers(ctx context.Context, hc HTTPClient, baseURL, id string, paging types.Paging) (*types.ResponseList, error) {
	return listUsers(ctx, hc, baseURL, "users_followers", UsersFollowersPath, id, paging)
}

// UsersFriends retrieves one page of accounts id follows.
func UsersFriends(ctx context.Context, hc HTTPClient, baseURL, id string, paging types.Paging) (*types.ResponseList, error) {
	return listUsers(ctx, hc, baseURL, "users_friends", UsersFriendsPath, id, paging)
}

func listUsers(ctx context.Context, hc HTTPClient, baseURL, op, path, id string, paging types.Paging) (*types.ResponseList, error) {
	q, err := paging.Values()
	if err != nil {
		return nil, fmt.Errorf("%s: encode paging: %w", op, err)
	}
	q.Set("id", id)

	var list types.ResponseList
	h, err := Execute(ctx, hc, baseURL, Request{Operation: op, Path: path, Query: q}, &list)
	if err != nil {
		return nil, err
	}
	list.ApplyHeaders(h)
	return &list, nil
}
