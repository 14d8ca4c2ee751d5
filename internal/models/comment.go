package models

import "time"

// Comment is a reader-submitted comment document. A comment appears on the
// public page only once an operator flips Approved in the CMS; this system
// always creates comments with Approved == false.
type Comment struct {
	ID        string    `json:"_id,omitempty"`
	Post      Reference `json:"post"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"_createdAt,omitempty"`
}
