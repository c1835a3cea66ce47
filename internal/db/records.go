package db

import "time"

// ItemRecord is the stored shape of a FAQ item.
type ItemRecord struct {
	ID        string    `json:"id" bson:"id"`
	Question  string    `json:"question" bson:"question"`
	Answer    string    `json:"answer" bson:"answer"`
	Category  string    `json:"category" bson:"category"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// PreferencesRecord is the stored shape of a user preferences document.
type PreferencesRecord struct {
	UserID       string    `json:"user_id" bson:"user_id"`
	HasSeenIntro bool      `json:"has_seen_intro" bson:"has_seen_intro"`
	Favorites    []string  `json:"favorites" bson:"favorites"`
	Theme        string    `json:"theme" bson:"theme"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
