package entity

// Course is a golf venue owned by a single user. There is no shared course
// catalog: two users who play the same venue each hold their own record.
type Course struct {
	ID          string   `firestore:"-" json:"id"`
	Name        string   `firestore:"name" json:"name"`
	Location    string   `firestore:"location" json:"location"`
	Address     string   `firestore:"address,omitempty" json:"address,omitempty"`
	Lat         float64  `firestore:"lat" json:"lat"` // 0 means unknown
	Lng         float64  `firestore:"lng" json:"lng"` // 0 means unknown
	State       string   `firestore:"state,omitempty" json:"state,omitempty"`
	Country     string   `firestore:"country" json:"country"`
	Rating      *float64 `firestore:"rating,omitempty" json:"rating,omitempty"` // 0-5
	TimesPlayed int64    `firestore:"timesPlayed" json:"timesPlayed"`
	LastPlayed  string   `firestore:"lastPlayed,omitempty" json:"lastPlayed,omitempty"`
	AddedByID   string   `firestore:"addedById" json:"addedById"`
	AddedOn     string   `firestore:"addedOn" json:"addedOn"`
}

// HasCoordinates reports whether the course carries a real position.
// Zero/zero is the "unknown" sentinel and is skipped by map aggregates.
func (c *Course) HasCoordinates() bool {
	return c.Lat != 0 || c.Lng != 0
}
