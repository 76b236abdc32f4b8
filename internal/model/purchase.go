package model

import "time"

// ItemType is the closed set of purchasable kinds. Anything outside it is
// rejected at the API boundary instead of being stored verbatim.
type ItemType string

const (
	ItemTypeVideo    ItemType = "video"
	ItemTypeCategory ItemType = "category"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeVideo || t == ItemTypeCategory
}

type Purchase struct {
	Username  string    `json:"-"`
	ItemType  ItemType  `json:"item_type"`
	ItemID    int64     `json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}
