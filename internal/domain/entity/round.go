package entity

// Round is a single golf outing. It references a Course by id and carries a
// denormalized copy of the course name so history rendering needs no join.
// Rounds are append-only.
type Round struct {
	ID         string   `firestore:"-" json:"id"`
	UserID     string   `firestore:"userId" json:"userId"`
	CourseID   string   `firestore:"courseId" json:"courseId"`
	CourseName string   `firestore:"courseName" json:"courseName"`
	Date       string   `firestore:"date" json:"date"` // YYYY-MM-DD
	Score      *int     `firestore:"score,omitempty" json:"score,omitempty"`
	Par        *int     `firestore:"par,omitempty" json:"par,omitempty"`
	Tees       string   `firestore:"tees,omitempty" json:"tees,omitempty"`
	Rating     *float64 `firestore:"rating,omitempty" json:"rating,omitempty"` // course rating, e.g. 71.2
	Slope      *int     `firestore:"slope,omitempty" json:"slope,omitempty"`
	Notes      string   `firestore:"notes,omitempty" json:"notes,omitempty"`
	Weather    string   `firestore:"weather,omitempty" json:"weather,omitempty"`
	PlayedWith []string `firestore:"playedWith,omitempty" json:"playedWith,omitempty"`
	PhotoURLs  []string `firestore:"photoUrls,omitempty" json:"photoUrls,omitempty"`
	CreatedAt  string   `firestore:"createdAt" json:"createdAt"` // RFC 3339
	UpdatedAt  string   `firestore:"updatedAt" json:"updatedAt"` // RFC 3339
}
