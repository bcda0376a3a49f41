package metadomain

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Paging is the paging object of a list response. Next is absent on the last page.
type Paging struct {
	Cursors  Cursors `json:"cursors"`
	Next     string  `json:"next"`
	Previous string  `json:"previous"`
}

// Page is one response of a paginated edge. Next is empty on the last page.
type Page[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}
