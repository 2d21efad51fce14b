package saavn

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SearchResponse is the saavn search envelope. The data field is usually
// an object with a results array, but some deployments return the array
// directly.
type SearchResponse struct {
	Data Data `json:"data"`
}

// Data holds the search results.
type Data struct {
	Results []Song `json:"results"`
}

// UnmarshalJSON accepts either {"results": [...]} or a bare [...] array.
func (d *Data) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(b, &d.Results)
	}
	type alias Data
	return json.Unmarshal(b, (*alias)(d))
}

// Song is one saavn search result.
type Song struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PrimaryArtists string    `json:"primaryArtists"`
	Album          Album     `json:"album"`
	Duration       Seconds   `json:"duration"`
	Image          Images    `json:"image"`
	DownloadURL    Downloads `json:"downloadUrl"`
}

// Album is the saavn album record.
type Album struct {
	Name string `json:"name"`
}

// Seconds is a duration field that arrives as either a number or a
// numeric string.
type Seconds int

func (s *Seconds) UnmarshalJSON(b []byte) error {
	trimmed := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if trimmed == "" || trimmed == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return err
	}
	*s = Seconds(n)
	return nil
}

// Images is an artwork field that arrives as either a plain URL string or
// a list of quality-tagged links.
type Images []ImageLink

// ImageLink is one artwork rendition.
type ImageLink struct {
	Quality string `json:"quality"`
	Link    string `json:"link"`
}

func (im *Images) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*im = Images{{Link: s}}
		return nil
	}
	var links []ImageLink
	if err := json.Unmarshal(b, &links); err != nil {
		return err
	}
	*im = links
	return nil
}

// Best returns the highest-resolution artwork link, which saavn orders
// last.
func (im Images) Best() string {
	if len(im) == 0 {
		return ""
	}
	return im[len(im)-1].Link
}

// Downloads is a stream-source field that arrives as either a plain URL
// string or a list of quality-tagged variants.
type Downloads struct {
	URL      string
	Variants []Variant
}

// Variant is one quality-tagged download link.
type Variant struct {
	Quality string `json:"quality"`
	Link    string `json:"link"`
}

func (d *Downloads) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, `"`) {
		return json.Unmarshal(b, &d.URL)
	}
	return json.Unmarshal(b, &d.Variants)
}
