package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Store is a grocery store with a GeoJSON location
type Store struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Address  string             `bson:"address" json:"address"`
	Location GeoPoint           `bson:"location" json:"location"`
	Type     string             `bson:"type" json:"type"`
}
