package musicsearch

// RawItem is one catalog entry as the remote search service returns it.
// Fields other than the video id may be absent; items without a video id are
// unusable and get dropped during parsing.
type RawItem struct {
	VideoID         string      `json:"videoId"`
	Title           string      `json:"title"`
	Artists         []RawArtist `json:"artists"`
	Album           *RawAlbum   `json:"album"`
	DurationSeconds *int        `json:"duration_seconds"`
	IsExplicit      bool        `json:"isExplicit"`
}

// RawArtist is a single contributor on a raw item.
type RawArtist struct {
	Name string `json:"name"`
}

// RawAlbum is the optional album reference on a raw item.
type RawAlbum struct {
	Name string `json:"name"`
}
