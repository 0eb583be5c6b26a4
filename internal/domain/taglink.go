package domain

// TagLink joins a Tag to a Link. Its identity is the (tag_id, link_id) pair.
//
// AccountID is denormalized: it must equal the account of both the referenced
// Tag and Link at creation time. The store never persists a TagLink joining
// entities from different owners.
type TagLink struct {
	TagID     string `json:"tag_id"`
	LinkID    string `json:"link_id"`
	AccountID string `json:"account_id"`
}
