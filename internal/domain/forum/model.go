package forum

import (
	"strings"
	"time"

	"fitness-tracker/backend/internal/utils"
)

type Post struct {
	ID          string    `firestore:"-" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Content     string    `firestore:"content" json:"content"`
	ContentHTML string    `firestore:"-" json:"contentHtml,omitempty"`
	Tags        []string  `firestore:"tags" json:"tags"`
	Image       string    `firestore:"image,omitempty" json:"image,omitempty"`
	VoteCount   int64     `firestore:"voteCount" json:"voteCount"`
	AuthorName  string    `firestore:"authorName" json:"authorName"`
	AuthorEmail string    `firestore:"authorEmail" json:"authorEmail"`
	AuthorImage string    `firestore:"authorImage,omitempty" json:"authorImage,omitempty"`
	AuthorRole  string    `firestore:"authorRole" json:"authorRole"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}

type CreateInput struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required,max=20000"`
	Tags    []string `json:"tags" validate:"max=10,dive,max=40"`
	Image   string   `json:"image,omitempty" validate:"omitempty,url"`
}

func (in *CreateInput) Trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Tags = utils.Compact(in.Tags)
	in.Image = strings.TrimSpace(in.Image)
}

type VoteInput struct {
	Vote int `json:"vote"`
}

// Valid reports whether the vote is a single up or down vote.
func (v VoteInput) Valid() bool {
	return v.Vote == 1 || v.Vote == -1
}

type Page struct {
	Posts       []Post `json:"posts"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	Total       int    `json:"total"`
}
