package models

// Authority owns a calendar of slots. Immutable once slots or appointments reference it.
type Authority struct {
	ID       string `bson:"id" json:"authority_id"`
	Name     string `bson:"name" json:"name"`
	Category string `bson:"category" json:"category"`
	Location string `bson:"location,omitempty" json:"location,omitempty"`
}
