package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MinActors is the smallest cast a movie may be stored with.
const MinActors = 3

type Movie struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	ReleaseDate string             `json:"releaseDate" bson:"releaseDate" validate:"required"`
	Genre       string             `json:"genre" bson:"genre" validate:"required"`
	Actors      []string           `json:"actors" bson:"actors" validate:"required,min=3,dive,required"`
}

// MovieUpdate holds the fields of a partial update. Nil fields are left untouched.
type MovieUpdate struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	ReleaseDate *string   `json:"releaseDate,omitempty" validate:"omitempty,min=1"`
	Genre       *string   `json:"genre,omitempty" validate:"omitempty,min=1"`
	Actors      *[]string `json:"actors,omitempty" validate:"omitempty,min=3,dive,required"`
}

// IsEmpty reports whether no field was supplied.
func (u MovieUpdate) IsEmpty() bool {
	return u.Title == nil && u.ReleaseDate == nil && u.Genre == nil && u.Actors == nil
}

// Apply copies the supplied fields onto m.
func (u MovieUpdate) Apply(m *Movie) {
	if u.Title != nil {
		m.Title = *u.Title
	}
	if u.ReleaseDate != nil {
		m.ReleaseDate = *u.ReleaseDate
	}
	if u.Genre != nil {
		m.Genre = *u.Genre
	}
	if u.Actors != nil {
		m.Actors = append([]string(nil), (*u.Actors)...)
	}
}

// SetFields returns the bson field names and values of the supplied fields.
func (u MovieUpdate) SetFields() map[string]interface{} {
	set := make(map[string]interface{})
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.ReleaseDate != nil {
		set["releaseDate"] = *u.ReleaseDate
	}
	if u.Genre != nil {
		set["genre"] = *u.Genre
	}
	if u.Actors != nil {
		set["actors"] = *u.Actors
	}
	return set
}
