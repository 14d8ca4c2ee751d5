package models

import "time"

// Slug mirrors the slug object stored on a post document.
type Slug struct {
	Current string `json:"current"`
}

// Reference is a pointer to another document in the content store.
type Reference struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
}

// Image is an image field: a reference to an uploaded asset plus optional alt text.
type Image struct {
	Type  string     `json:"_type,omitempty"`
	Asset *Reference `json:"asset,omitempty"`
	Alt   string     `json:"alt,omitempty"`
}

// Author is a post author. When projected through a post query only Name and
// Image are populated.
type Author struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Image Image  `json:"image"`
}

// Category labels zero or more posts.
type Category struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Slug  Slug   `json:"slug"`
}

// Post is a blog post document as resolved for the article page: author
// dereferenced, approved comments projected in.
type Post struct {
	ID          string      `json:"_id"`
	PublishedAt time.Time   `json:"publishedAt"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Slug        Slug        `json:"slug"`
	Author      Author      `json:"author"`
	MainImage   Image       `json:"mainImage"`
	Categories  []Reference `json:"categories,omitempty"`
	Body        []Block     `json:"body"`
	Comments    []Comment   `json:"comments"`
}

// PostStub is the projection used for path enumeration.
type PostStub struct {
	ID   string `json:"_id"`
	Slug Slug   `json:"slug"`
}
