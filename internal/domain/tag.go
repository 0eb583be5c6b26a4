package domain

// Tag is a label owned by exactly one Account.
// (account_id, name) is unique: an account cannot have two tags with the same name.
type Tag struct {
	ID        string `json:"tag_id"`
	AccountID string `json:"account_id"`
	Name      string `json:"tag"`
}
