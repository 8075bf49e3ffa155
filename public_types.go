package client

import "github.com/fanfou-go/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Domain entities
	User = types.User
	ID   = types.ID
	Time = types.Time

	// Requests
	Paging = types.Paging

	// Responses
	ResponseList    = types.ResponseList
	RateLimitStatus = types.RateLimitStatus
)

// Errors re-exported in errors.go
