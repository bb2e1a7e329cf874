package user

import (
	"context"
	"fmt"

	"fitness-tracker/backend/internal/docstore"

	"cloud.google.com/go/firestore"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(docstore.ColUsers)
}

// Create stores u under its email. The document id makes uniqueness atomic.
func (r *Repo) Create(ctx context.Context, u User) (*User, error) {
	_, err := r.col().Doc(u.Email).Create(ctx, u)
	if docstore.IsAlreadyExists(err) {
		return nil, fmt.Errorf("%w: %s", ErrConflict, u.Email)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) Get(ctx context.Context, email string) (*User, error) {
	doc, err := r.col().Doc(email).Get(ctx)
	if docstore.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	var u User
	if err := doc.DataTo(&u); err != nil {
		return nil, err
	}
	if u.Email == "" {
		u.Email = doc.Ref.ID
	}
	return &u, nil
}

// Update applies a partial update to an existing user.
func (r *Repo) Update(ctx context.Context, email string, fields map[string]any) (*User, error) {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	_, err := r.col().Doc(email).Update(ctx, updates)
	if docstore.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, email)
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	it := r.col().OrderBy("createdAt", firestore.Desc).Documents(ctx)
	return docstore.Collect(it, func(u *User, id string) {
		if u.Email == "" {
			u.Email = id
		}
	})
}
