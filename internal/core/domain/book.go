package domain

import "time"

const (
	// MinPublishedYear is the earliest accepted publication year.
	MinPublishedYear = 1000
	// PublishedYearHorizon is how far into the future a publication year may lie.
	PublishedYearHorizon = 10
)

// MaxPublishedYear returns the latest accepted publication year as of now.
func MaxPublishedYear(now time.Time) int {
	return now.UTC().Year() + PublishedYearHorizon
}

// Book is a catalog record. Every book has exactly one creator; only the
// creator or an admin may mutate or delete it.
type Book struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Title         string    `json:"title" bson:"title"`
	Author        string    `json:"author" bson:"author"`
	Genre         string    `json:"genre" bson:"genre"`
	PublishedYear int       `json:"published_year" bson:"published_year"`
	CreatedBy     string    `json:"created_by" bson:"created_by"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
