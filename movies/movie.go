package movies

// Movie is a single entry in the rendered collection
type Movie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	OpeningText string `json:"openingText"`
	ReleaseDate string `json:"releaseDate"`
}

// Year returns the four digit year of the release date, or an empty string
// when the date is too short to carry one
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}
