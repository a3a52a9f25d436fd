package feed

import (
	"context"

	"inkwell/internal/core/feed"
	"inkwell/internal/core/pagination"
	"inkwell/internal/core/post"
	groupPort "inkwell/internal/ports/group"
	postPort "inkwell/internal/ports/post"
	userPort "inkwell/internal/ports/user"
)

// FeedRepository reads posts newest first (created_at DESC, id DESC).
type FeedRepository interface {
	Count(ctx context.Context, filter feed.Filter) (int64, error)
	List(ctx context.Context, filter feed.Filter, offset, limit int) ([]*post.Post, error)
}

// PageDTO mirrors the page object a template would iterate over.
type PageDTO struct {
	Number             int                 `json:"number"`
	NumPages           int                 `json:"num_pages"`
	Count              int64               `json:"count"`
	HasPrevious        bool                `json:"has_previous"`
	HasNext            bool                `json:"has_next"`
	PreviousPageNumber int                 `json:"previous_page_number,omitempty"`
	NextPageNumber     int                 `json:"next_page_number,omitempty"`
	ObjectList         []*postPort.PostDTO `json:"object_list"`
}

type GroupFeedDTO struct {
	Group   *groupPort.GroupDTO `json:"group"`
	PageObj *PageDTO            `json:"page_obj"`
}

type ProfileFeedDTO struct {
	Author    *userPort.UserDTO `json:"author"`
	PostCount int64             `json:"post_count"`
	Following bool              `json:"following"`
	PageObj   *PageDTO          `json:"page_obj"`
}

func ToPageDTO(p pagination.Page, posts []*post.Post) *PageDTO {
	list := make([]*postPort.PostDTO, 0, len(posts))
	for _, item := range posts {
		list = append(list, postPort.ToPostDTO(item))
	}
	return &PageDTO{
		Number:             p.Number,
		NumPages:           p.NumPages,
		Count:              p.Count,
		HasPrevious:        p.HasPrevious(),
		HasNext:            p.HasNext(),
		PreviousPageNumber: p.PreviousPageNumber(),
		NextPageNumber:     p.NextPageNumber(),
		ObjectList:         list,
	}
}
