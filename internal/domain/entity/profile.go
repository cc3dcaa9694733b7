package entity

// Profile is the application-level user record, keyed by the Identity UID.
// It holds golf-specific preferences plus counters that are only ever moved
// by atomic increments from round/course creation, never recomputed here.
type Profile struct {
	UID                string   `firestore:"uid" json:"uid"`
	DisplayName        string   `firestore:"displayName" json:"displayName"`
	Email              string   `firestore:"email,omitempty" json:"email,omitempty"`
	PhotoURL           string   `firestore:"photoURL,omitempty" json:"photoURL,omitempty"`
	PhoneNumber        string   `firestore:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	HomeCourseName     string   `firestore:"homeCourseName,omitempty" json:"homeCourseName,omitempty"`
	HomeCourseLoc      string   `firestore:"homeCourseLoc,omitempty" json:"homeCourseLoc,omitempty"`
	Handicap           *float64 `firestore:"handicap,omitempty" json:"handicap,omitempty"`
	TotalRounds        int64    `firestore:"totalRounds" json:"totalRounds"`
	TotalCourses       int64    `firestore:"totalCourses" json:"totalCourses"`
	MostPlayedCourseID string   `firestore:"mostPlayedCourseId,omitempty" json:"mostPlayedCourseId,omitempty"`
	LastPlayedDate     string   `firestore:"lastPlayedDate,omitempty" json:"lastPlayedDate,omitempty"`
}

// NewProfile synthesizes the default profile for a freshly signed-in identity:
// provider fields copied over, counters zeroed, no home course.
func NewProfile(id *Identity) *Profile {
	return &Profile{
		UID:         id.UID,
		DisplayName: id.DisplayName,
		Email:       id.Email,
		PhotoURL:    id.PhotoURL,
		PhoneNumber: id.PhoneNumber,
	}
}

// Clone returns a shallow copy of the profile.
func (p *Profile) Clone() *Profile {
	cp := *p
	if p.Handicap != nil {
		h := *p.Handicap
		cp.Handicap = &h
	}

	return &cp
}

// ProfileUpdate is a partial profile edit. Nil fields are left untouched, both
// in the backing store and in the in-memory copy the session keeps.
type ProfileUpdate struct {
	DisplayName    *string  `json:"displayName,omitempty"`
	PhotoURL       *string  `json:"photoURL,omitempty"`
	HomeCourseName *string  `json:"homeCourseName,omitempty"`
	HomeCourseLoc  *string  `json:"homeCourseLoc,omitempty"`
	Handicap       *float64 `json:"handicap,omitempty"`
}

// IsZero reports whether the update carries no fields at all.
func (u *ProfileUpdate) IsZero() bool {
	return u.DisplayName == nil && u.PhotoURL == nil && u.HomeCourseName == nil &&
		u.HomeCourseLoc == nil && u.Handicap == nil
}

// Apply merges the update into the profile, field by field. It must mirror
// exactly the partial write sent to the backend so the optimistic local copy
// never drifts from the stored document.
func (p *Profile) Apply(u *ProfileUpdate) {
	if u.DisplayName != nil {
		p.DisplayName = *u.DisplayName
	}
	if u.PhotoURL != nil {
		p.PhotoURL = *u.PhotoURL
	}
	if u.HomeCourseName != nil {
		p.HomeCourseName = *u.HomeCourseName
	}
	if u.HomeCourseLoc != nil {
		p.HomeCourseLoc = *u.HomeCourseLoc
	}
	if u.Handicap != nil {
		p.Handicap = u.Handicap
	}
}
