package entity

import "time"

type User struct {
	ID          string    `json:"id" firestore:"-"`
	DisplayName string    `json:"display_name" firestore:"displayName"`
	Email       string    `json:"email" firestore:"email"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}
