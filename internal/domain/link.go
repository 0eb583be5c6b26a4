package domain

// Link is a bookmarked URL owned by exactly one Account. A Link is never
// created bare: link creation always establishes at least one TagLink.
type Link struct {
	ID        string `json:"link_id"`
	AccountID string `json:"account_id"`
	URL       string `json:"link"`
}
