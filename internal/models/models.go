package models

import (
	"strings"
	"time"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DateJoined   time.Time `json:"dateJoined" db:"date_joined"`
}

// FullName falls back to the username when no name was given.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

type Group struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

func (g Group) String() string {
	return g.Title
}

// Post is the handler-facing post. AuthorID is always set for posts created
// through the site; rows bulk-loaded without an author carry AuthorID == 0.
type Post struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pubDate"`
	AuthorID int64     `json:"authorId"`
	GroupID  *int64    `json:"groupId"`

	Author User   `json:"author"`
	Group  *Group `json:"group,omitempty"`
}

func (p Post) HasAuthor() bool {
	return p.AuthorID != 0
}

// String returns the first 15 characters of the text.
func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > 15 {
		return string(runes[:15])
	}
	return p.Text
}
