package entity

import (
	"time"
)

type Banner struct {
	ID       string `json:"id" firestore:"id"`
	Title    string `json:"title" firestore:"title"`
	ImageURL string `json:"image_url" firestore:"imageUrl"`
	Link     string `json:"link,omitempty" firestore:"link,omitempty"`
	Active   bool   `json:"active" firestore:"active"`
	Position int    `json:"position" firestore:"position"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type MediaItem struct {
	ID          string `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	URL         string `json:"url" firestore:"url"`
	ObjectPath  string `json:"object_path" firestore:"objectPath"`
	ContentType string `json:"content_type" firestore:"contentType"`
	Size        int64  `json:"size" firestore:"size"`
	UploadedBy  string `json:"uploaded_by" firestore:"uploadedBy"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
