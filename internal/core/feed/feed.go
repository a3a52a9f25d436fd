package feed

import "github.com/gofrs/uuid"

// Filter narrows the post collection; nil fields do not filter.
// FollowerID selects posts by authors that user follows.
type Filter struct {
	GroupID    *uuid.UUID
	AuthorID   *uuid.UUID
	FollowerID *uuid.UUID
}

// Kind names a feed for logging and metrics.
type Kind string

const (
	Global    Kind = "global"
	Group     Kind = "group"
	Profile   Kind = "profile"
	Following Kind = "following"
)
