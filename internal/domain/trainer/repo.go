package trainer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fitness-tracker/backend/internal/docstore"
	"fitness-tracker/backend/internal/domain/user"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(docstore.ColTrainers)
}

func (r *Repo) userDoc(email string) *firestore.DocumentRef {
	return r.fs.Collection(docstore.ColUsers).Doc(email)
}

func setID(a *Application, id string) { a.ID = id }

func decode(snap *firestore.DocumentSnapshot) (*Application, error) {
	var a Application
	if err := snap.DataTo(&a); err != nil {
		return nil, err
	}
	a.ID = snap.Ref.ID
	return &a, nil
}

// Doc returns the application document for id.
func Doc(fs *firestore.Client, id string) *firestore.DocumentRef {
	return fs.Collection(docstore.ColTrainers).Doc(id)
}

// ReadTx loads the application behind ref within tx.
func ReadTx(tx *firestore.Transaction, ref *firestore.DocumentRef) (*Application, error) {
	snap, err := tx.Get(ref)
	if docstore.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref.ID)
	}
	if err != nil {
		return nil, err
	}
	return decode(snap)
}

// FindByEmailTx loads the application filed by email within tx. When status
// is not empty the application must also be in that state.
func FindByEmailTx(tx *firestore.Transaction, fs *firestore.Client, email, status string) (*Application, error) {
	q := fs.Collection(docstore.ColTrainers).Where("email", "==", email)
	if status != "" {
		q = q.Where("status", "==", status)
	}
	it := tx.Documents(q.Limit(1))
	defer it.Stop()

	snap, err := it.Next()
	if errors.Is(err, iterator.Done) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return decode(snap)
}

// Apply files a pending application and marks the user as pending, unless an
// application for the same email already exists.
func (r *Repo) Apply(ctx context.Context, a Application) (*Application, error) {
	ref := r.col().NewDoc()
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := FindByEmailTx(tx, r.fs, a.Email, "")
		if err == nil {
			return fmt.Errorf("%w: %s", ErrAlreadyApplied, a.Email)
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		userRef := r.userDoc(a.Email)
		_, err = tx.Get(userRef)
		userExists := err == nil
		if err != nil && !docstore.IsNotFound(err) {
			return err
		}

		if err := tx.Create(ref, a); err != nil {
			return err
		}
		if userExists {
			return tx.Update(userRef, []firestore.Update{{Path: "trainerStatus", Value: user.TrainerStatusPending}})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.ID = ref.ID
	return &a, nil
}

func (r *Repo) ListByStatus(ctx context.Context, status string) ([]Application, error) {
	it := r.col().Where("status", "==", status).Documents(ctx)
	apps, err := docstore.Collect(it, setID)
	if err != nil {
		return nil, err
	}
	sortByAppliedDesc(apps)
	return apps, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Application, error) {
	snap, err := Doc(r.fs, id).Get(ctx)
	if docstore.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return decode(snap)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*Application, error) {
	it := r.col().Where("email", "==", email).Limit(1).Documents(ctx)
	apps, err := docstore.Collect(it, setID)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	return &apps[0], nil
}

// Approve promotes the applicant. The application and the user record change
// together or not at all.
func (r *Repo) Approve(ctx context.Context, id string, at time.Time) (*Application, error) {
	var out *Application
	ref := Doc(r.fs, id)
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		a, err := ReadTx(tx, ref)
		if err != nil {
			return err
		}
		if err := a.CheckApprovable(); err != nil {
			return err
		}

		userRef := r.userDoc(a.Email)
		if _, err := tx.Get(userRef); err != nil {
			if docstore.IsNotFound(err) {
				return fmt.Errorf("%w: %s", ErrUserNotFound, a.Email)
			}
			return err
		}

		if err := tx.Update(ref, []firestore.Update{
			{Path: "status", Value: StatusApproved},
			{Path: "approvedAt", Value: at},
		}); err != nil {
			return err
		}
		a.Status = StatusApproved
		a.ApprovedAt = at
		out = a

		return tx.Update(userRef, []firestore.Update{
			{Path: "role", Value: user.RoleTrainer},
			{Path: "trainerStatus", Value: user.TrainerStatusApproved},
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reject removes the application, stores the feedback for the applicant and
// marks the user as rejected when the account exists.
func (r *Repo) Reject(ctx context.Context, id, feedback string, at time.Time) (*RejectionFeedback, error) {
	var out RejectionFeedback
	ref := Doc(r.fs, id)
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		a, err := ReadTx(tx, ref)
		if err != nil {
			return err
		}
		if err := a.CheckRejectable(); err != nil {
			return err
		}

		userRef := r.userDoc(a.Email)
		_, err = tx.Get(userRef)
		userExists := err == nil
		if err != nil && !docstore.IsNotFound(err) {
			return err
		}

		out = NewRejection(*a, feedback, at)
		if err := tx.Delete(ref); err != nil {
			return err
		}
		if err := tx.Set(r.fs.Collection(docstore.ColRejectionFeedback).Doc(a.Email), out); err != nil {
			return err
		}
		if userExists {
			return tx.Update(userRef, []firestore.Update{{Path: "trainerStatus", Value: user.TrainerStatusRejected}})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteByEmail removes every application filed by email.
func (r *Repo) DeleteByEmail(ctx context.Context, email string) (int, error) {
	docs, err := r.col().Where("email", "==", email).Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	for _, d := range docs {
		if _, err := d.Ref.Delete(ctx); err != nil {
			return 0, err
		}
	}
	return len(docs), nil
}

func (r *Repo) Feedback(ctx context.Context, email string) (*RejectionFeedback, error) {
	snap, err := r.fs.Collection(docstore.ColRejectionFeedback).Doc(email).Get(ctx)
	if docstore.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoFeedback, email)
	}
	if err != nil {
		return nil, err
	}
	var fb RejectionFeedback
	if err := snap.DataTo(&fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// UpdateSlotsTx rewrites the slots array of the application behind ref.
func UpdateSlotsTx(tx *firestore.Transaction, ref *firestore.DocumentRef, slots []Slot) error {
	if slots == nil {
		slots = []Slot{}
	}
	return tx.Update(ref, []firestore.Update{{Path: "slots", Value: slots}})
}

// sortByAppliedDesc orders in memory so the status filter needs no composite index.
func sortByAppliedDesc(apps []Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].AppliedAt.After(apps[j].AppliedAt)
	})
}
