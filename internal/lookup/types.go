// Package lookup provides song search against the iTunes Search API for
// the fan request form.
package lookup

// SongResult is a single song match offered to the fan.
type SongResult struct {
	Song    string `json:"song"`
	Artist  string `json:"artist"`
	Album   string `json:"album"`
	Artwork string `json:"artwork,omitempty"`
	Year    int    `json:"year,omitempty"`
}

// searchResponse is the raw iTunes API response.
type searchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []searchResult `json:"results"`
}

// searchResult is a single result from iTunes search.
type searchResult struct {
	WrapperType    string `json:"wrapperType"`
	Kind           string `json:"kind"`
	TrackName      string `json:"trackName"`
	ArtistName     string `json:"artistName"`
	CollectionName string `json:"collectionName"`
	ArtworkURL60   string `json:"artworkUrl60"`
	ArtworkURL100  string `json:"artworkUrl100"`
	TrackID        int64  `json:"trackId,omitempty"`
	ReleaseDate    string `json:"releaseDate,omitempty"`
}
