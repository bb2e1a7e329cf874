package class

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

// Doc returns the class document so other domains can touch it inside their
// own transactions.
func Doc(fs *firestore.Client, id string) *firestore.DocumentRef {
	return fs.Collection(docstore.ColClasses).Doc(id)
}

// ReadTx loads a class within tx.
func ReadTx(tx *firestore.Transaction, ref *firestore.DocumentRef) (*Class, error) {
	snap, err := tx.Get(ref)
	if docstore.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref.ID)
	}
	if err != nil {
		return nil, err
	}
	var c Class
	if err := snap.DataTo(&c); err != nil {
		return nil, err
	}
	c.ID = ref.ID
	return &c, nil
}

func setID(c *Class, id string) { c.ID = id }

func (r *Repo) Create(ctx context.Context, c Class) (*Class, error) {
	ref, _, err := r.fs.Collection(docstore.ColClasses).Add(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = ref.ID
	return &c, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Class, error) {
	doc, err := Doc(r.fs, id).Get(ctx)
	if docstore.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var c Class
	if err := doc.DataTo(&c); err != nil {
		return nil, err
	}
	c.ID = doc.Ref.ID
	return &c, nil
}

// List returns every class, newest first.
func (r *Repo) List(ctx context.Context) ([]Class, error) {
	it := r.fs.Collection(docstore.ColClasses).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	return docstore.Collect(it, setID)
}

// Top returns the most booked classes; unbooked classes never qualify.
func (r *Repo) Top(ctx context.Context, n int) ([]Class, error) {
	it := r.fs.Collection(docstore.ColClasses).
		Where("totalBooked", ">", 0).
		OrderBy("totalBooked", firestore.Desc).
		OrderBy("createdAt", firestore.Desc).
		Limit(n).
		Documents(ctx)
	return docstore.Collect(it, setID)
}

// AddTrainer checks and writes the trainer list in a single transaction.
func (r *Repo) AddTrainer(ctx context.Context, id string, ref TrainerRef) (*Class, error) {
	var out *Class
	doc := Doc(r.fs, id)
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		c, err := ReadTx(tx, doc)
		if err != nil {
			return err
		}
		if err := c.AddTrainer(ref); err != nil {
			return err
		}
		out = c
		return tx.Update(doc, []firestore.Update{{Path: "trainer", Value: c.Trainers}})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveTrainerEverywhere pulls every reference to email from all classes and
// reports how many classes changed.
func (r *Repo) RemoveTrainerEverywhere(ctx context.Context, email string) (int, error) {
	classes, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	modified := 0
	for _, c := range classes {
		refs := c.TrainersWithEmail(email)
		if len(refs) == 0 {
			continue
		}
		vals := make([]interface{}, len(refs))
		for i, ref := range refs {
			vals[i] = ref
		}
		_, err := Doc(r.fs, c.ID).Update(ctx, []firestore.Update{
			{Path: "trainer", Value: firestore.ArrayRemove(vals...)},
		})
		if err != nil {
			return modified, err
		}
		modified++
	}
	return modified, nil
}
