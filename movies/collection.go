package movies

// Collection holds the in-memory movie list and issues ids for manual entries.
//
// Ids handed out by Add never collide with ids already in the collection,
// including those supplied by an upstream fetch. Collection is not safe for
// concurrent use; callers guard it.
type Collection struct {
	items  []Movie
	lastID int
}

// NewCollection creates an empty collection
func NewCollection() *Collection {
	return &Collection{items: make([]Movie, 0)}
}

// Replace swaps the whole list for the given movies
func (c *Collection) Replace(movies []Movie) {
	c.items = make([]Movie, len(movies))
	copy(c.items, movies)
	for _, m := range movies {
		if m.ID > c.lastID {
			c.lastID = m.ID
		}
	}
}

// Add appends a manually entered movie and returns it with its assigned id
func (c *Collection) Add(title, openingText, releaseDate string) Movie {
	c.lastID++
	movie := Movie{
		ID:          c.lastID,
		Title:       title,
		OpeningText: openingText,
		ReleaseDate: releaseDate,
	}
	c.items = append(c.items, movie)
	return movie
}

// Len returns the number of movies
func (c *Collection) Len() int {
	return len(c.items)
}

// All returns a copy of the movies in insertion order
func (c *Collection) All() []Movie {
	out := make([]Movie, len(c.items))
	copy(out, c.items)
	return out
}
