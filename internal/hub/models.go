package hub

// SearchResponse is the hub search envelope.
type SearchResponse struct {
	Collection []Item `json:"collection"`
}

// Item is one hub search result.
type Item struct {
	ID     string `json:"id"`
	Song   Song   `json:"song"`
	Author Author `json:"author"`
}

// Song holds the hub's nested track fields.
type Song struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Duration Duration `json:"duration"`
	Img      Image    `json:"img"`
}

// Author is the hub's artist record.
type Author struct {
	Name string `json:"name"`
}

// Image carries two artwork sizes; either may be a path relative to the
// hub base URL.
type Image struct {
	Big   string `json:"big"`
	Small string `json:"small"`
}

// Duration is the hub's split-clock duration representation.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// TotalSeconds flattens the split-clock fields.
func (d Duration) TotalSeconds() int {
	return d.Hours*3600 + d.Minutes*60 + d.Seconds
}
