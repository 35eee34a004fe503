// Package models defines the catalog domain structures shared by the
// web gateway, the terminal client, and the remote-API collaborators.
package models

import (
	"encoding/json"
	"fmt"
)

// Role values used by the remote API.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an authenticated account as returned by the identity
// endpoints. Extra fields the API may attach are ignored on decode.
type User struct {
	// ID is the remote identifier of the account.
	ID string `json:"_id"`
	// Name is the display name chosen at registration.
	Name string `json:"name"`
	// Email is the login email.
	Email string `json:"email"`
	// Role is the authorization role ("admin" or "user").
	Role string `json:"role"`
	// Photo is the avatar URL resolved by the upload collaborator.
	Photo string `json:"photo,omitempty"`
	// CreatedAt is the account creation timestamp, as sent by the API.
	CreatedAt string `json:"createdAt,omitempty"`
}

// NameRef is a reference the API serializes either as a bare string or as
// an embedded document {"_id": ..., "name": ...}. Older records carry the
// string form, populated records the document form.
type NameRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts both serializations of a NameRef.
func (r *NameRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = NameRef{Name: s}
		return nil
	}
	type alias NameRef
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("decode name ref: %w", err)
	}
	*r = NameRef(a)
	return nil
}

// String returns the display form of the reference.
func (r NameRef) String() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Book is a catalog item. Author and Genre tolerate both the string and
// the populated-document serializations.
type Book struct {
	ID            string  `json:"_id"`
	Title         string  `json:"title"`
	Author        NameRef `json:"author"`
	Genre         NameRef `json:"genre"`
	Description   string  `json:"description"`
	CoverImage    string  `json:"cover_image,omitempty"`
	PublishedYear int     `json:"published_year,omitempty"`
	Pages         int     `json:"pages,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	TotalRatings  int     `json:"total_ratings,omitempty"`
	ISBN          string  `json:"isbn,omitempty"`
}

// Genre is a controlled-vocabulary facet value.
type Genre struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// BookRef is a book reference that may arrive as a bare id or as an
// embedded {_id, title, author} document.
type BookRef struct {
	ID     string  `json:"_id"`
	Title  string  `json:"title,omitempty"`
	Author NameRef `json:"author,omitempty"`
}

// UnmarshalJSON accepts both serializations of a BookRef.
func (r *BookRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = BookRef{ID: s}
		return nil
	}
	type alias BookRef
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("decode book ref: %w", err)
	}
	*r = BookRef(a)
	return nil
}

// Review moderation statuses.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// ReviewAuthor identifies the account that wrote a review.
type ReviewAuthor struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Review is a user review of a book. Book is populated on the admin
// moderation listing and a bare id elsewhere.
type Review struct {
	ID        string       `json:"_id"`
	User      ReviewAuthor `json:"user"`
	Book      BookRef      `json:"bookId"`
	Rating    int          `json:"rating"`
	Text      string       `json:"review"`
	Status    string       `json:"status"`
	CreatedAt string       `json:"createdAt,omitempty"`
}

// Shelf identifies one of the three personal shelves.
type Shelf string

// Valid shelves.
const (
	ShelfWant    Shelf = "want"
	ShelfReading Shelf = "reading"
	ShelfRead    Shelf = "read"
)

// Valid reports whether s is one of the three known shelves.
func (s Shelf) Valid() bool {
	switch s {
	case ShelfWant, ShelfReading, ShelfRead:
		return true
	}
	return false
}

// LibraryItem is one shelved book with reading progress.
type LibraryItem struct {
	ID        string  `json:"_id"`
	User      string  `json:"user"`
	Book      BookRef `json:"book"`
	Shelf     Shelf   `json:"shelf"`
	Progress  int     `json:"progress"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// Library groups a user's shelved books by shelf.
type Library struct {
	Want    []LibraryItem `json:"want"`
	Reading []LibraryItem `json:"reading"`
	Read    []LibraryItem `json:"read"`
}

// Tutorial is an admin-curated video tutorial attached to a book.
type Tutorial struct {
	ID         string  `json:"_id"`
	Title      string  `json:"title"`
	YouTubeURL string  `json:"youtubeUrl"`
	Book       BookRef `json:"book"`
}
