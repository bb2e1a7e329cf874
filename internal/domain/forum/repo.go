package forum

import (
	"context"
	"fmt"

	"fitness-tracker/backend/internal/docstore"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(docstore.ColForums)
}

func (r *Repo) Create(ctx context.Context, p Post) (*Post, error) {
	ref, _, err := r.col().Add(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = ref.ID
	return &p, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Post, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if docstore.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var p Post
	if err := snap.DataTo(&p); err != nil {
		return nil, err
	}
	p.ID = snap.Ref.ID
	return &p, nil
}

// List returns one window of posts, newest first.
func (r *Repo) List(ctx context.Context, offset, limit int) ([]Post, error) {
	it := r.col().OrderBy("createdAt", firestore.Desc).Offset(offset).Limit(limit).Documents(ctx)
	return docstore.Collect(it, func(p *Post, id string) { p.ID = id })
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	res, err := r.col().NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count result %T", res["all"])
	}
	return int(v.GetIntegerValue()), nil
}

// Vote applies delta atomically. There is no per-user vote tracking.
func (r *Repo) Vote(ctx context.Context, id string, delta int) (*Post, error) {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "voteCount", Value: firestore.Increment(delta)},
	})
	if docstore.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}
