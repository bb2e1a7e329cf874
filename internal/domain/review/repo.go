package review

import (
	"context"
	"sort"

	"fitness-tracker/backend/internal/docstore"

	"cloud.google.com/go/firestore"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func setID(r *Review, id string) { r.ID = id }

func (r *Repo) Create(ctx context.Context, rv Review) (*Review, error) {
	ref, _, err := r.fs.Collection(docstore.ColReviews).Add(ctx, rv)
	if err != nil {
		return nil, err
	}
	rv.ID = ref.ID
	return &rv, nil
}

func (r *Repo) Latest(ctx context.Context, n int) ([]Review, error) {
	it := r.fs.Collection(docstore.ColReviews).OrderBy("createdAt", firestore.Desc).Limit(n).Documents(ctx)
	return docstore.Collect(it, setID)
}

func (r *Repo) ByTrainer(ctx context.Context, trainerID string) ([]Review, error) {
	it := r.fs.Collection(docstore.ColReviews).Where("trainerId", "==", trainerID).Documents(ctx)
	out, err := docstore.Collect(it, setID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
