package api

type LikeStatusResponse struct {
	Count int  `json:"count"`
	Liked bool `json:"liked"`
}

// AddLikeResponse reports whether a new like row was written. Added is false
// when the identity had already liked the item.
type AddLikeResponse struct {
	Added bool `json:"added"`
}

type RemoveLikeResponse struct {
	Removed bool `json:"removed"`
}
