package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Component is a single submission: free-form text plus an optional externally
// hosted image, tagged with one or more group numbers. The record id and
// createdAt are assigned at insert time and never change afterwards.
type Component struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Component holds the group numbers this record belongs to. Never empty.
	Component []int `bson:"component" json:"component"`

	Text string `bson:"text,omitempty" json:"text,omitempty"`

	// Image is the public URL of the uploaded media. nil means no media attached.
	Image *string `bson:"image,omitempty" json:"image"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`

	// UpdatedAt stays nil until the record is updated for the first time.
	UpdatedAt *time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}
