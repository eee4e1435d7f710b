package domain

import "time"

// Like is one identity's endorsement of one content item, unique per pair.
type Like struct {
	Id             LikeId        `json:"id"`
	ContentItemId  ContentItemId `json:"content_item_id"`
	UserIdentifier Identity      `json:"user_identifier"`
	CreatedAt      time.Time     `json:"created_at"`
}

type LikeStatus struct {
	Count int  `json:"count"`
	Liked bool `json:"liked"`
}
