package model

// Video belongs to exactly one category. IDs are unique across the whole
// catalog, not just within a category.
type Video struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Price      int    `json:"price"`
	PreviewURL string `json:"preview_url"`
}

type Category struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Price  int     `json:"price"`
	Videos []Video `json:"videos"`
}
