package newsletter

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

func (r *Repo) Create(ctx context.Context, s Subscriber) error {
	_, err := r.fs.Collection(docstore.ColNewsletter).Doc(s.Email).Create(ctx, s)
	if docstore.IsAlreadyExists(err) {
		return fmt.Errorf("%w: %s", ErrConflict, s.Email)
	}
	return err
}

func (r *Repo) List(ctx context.Context) ([]Subscriber, error) {
	it := r.fs.Collection(docstore.ColNewsletter).OrderBy("subscribedAt", firestore.Desc).Documents(ctx)
	return docstore.Collect[Subscriber](it, nil)
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	res, err := r.fs.Collection(docstore.ColNewsletter).NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count result %T", res["all"])
	}
	return int(v.GetIntegerValue()), nil
}
