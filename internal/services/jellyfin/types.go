package jellyfin

// ItemType values returned in Item.Type.
const (
	ItemTypeMovie   = "Movie"
	ItemTypeEpisode = "Episode"
)

// User is the subset of a Jellyfin user record needed for name resolution.
type User struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// UserData carries per-user playback state for an item.
type UserData struct {
	Played         bool   `json:"Played"`
	LastPlayedDate string `json:"LastPlayedDate"`
}

// Item is a watched Movie or Episode as returned by the items endpoint.
// ProductionYear is nil when the server has no year for the item.
type Item struct {
	ID             string    `json:"Id"`
	Name           string    `json:"Name"`
	Type           string    `json:"Type"`
	SeriesName     string    `json:"SeriesName,omitempty"`
	ProductionYear *int      `json:"ProductionYear,omitempty"`
	UserData       *UserData `json:"UserData,omitempty"`
}

// IsEpisode reports whether the item is a series episode.
func (i Item) IsEpisode() bool {
	return i.Type == ItemTypeEpisode
}

type itemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}
