package slot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitness-tracker/backend/internal/domain/class"
	"fitness-tracker/backend/internal/domain/trainer"

	"cloud.google.com/go/firestore"
)

// Repo edits the slots embedded in trainer applications together with the
// trainer references held by classes.
type Repo struct {
	fs       *firestore.Client
	trainers *trainer.Repo
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs, trainers: trainer.NewRepo(fs)}
}

func (r *Repo) ApprovedByEmail(ctx context.Context, email string) (*trainer.Application, error) {
	a, err := r.trainers.GetByEmail(ctx, email)
	if errors.Is(err, trainer.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotApproved, email)
	}
	if err != nil {
		return nil, err
	}
	if !a.IsApproved() {
		return nil, fmt.Errorf("%w: %s", ErrNotApproved, email)
	}
	return a, nil
}

func (r *Repo) Application(ctx context.Context, id string) (*trainer.Application, error) {
	return r.trainers.Get(ctx, id)
}

// AppendSlot stores s on the approved trainer's application and lists the
// trainer on the linked class if not already there.
func (r *Repo) AppendSlot(ctx context.Context, email string, s trainer.Slot) (*trainer.Slot, error) {
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		a, err := trainer.FindByEmailTx(tx, r.fs, email, trainer.StatusApproved)
		if errors.Is(err, trainer.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotApproved, email)
		}
		if err != nil {
			return err
		}

		classRef := class.Doc(r.fs, s.ClassID)
		c, err := class.ReadTx(tx, classRef)
		if err != nil {
			return err
		}
		s.ClassName = c.Name

		addToClass := !c.HasTrainer(a.Email)
		if addToClass {
			if err := c.AddTrainer(refFor(*a)); err != nil {
				return err
			}
		}

		slots := append(append([]trainer.Slot{}, a.Slots...), s)
		if err := trainer.UpdateSlotsTx(tx, trainer.Doc(r.fs, a.ID), slots); err != nil {
			return err
		}
		if addToClass {
			return tx.Update(classRef, []firestore.Update{{Path: "trainer", Value: c.Trainers}})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSlot removes slotID from the trainer's application. The trainer leaves
// the class only when no remaining slot still points at it.
func (r *Repo) DeleteSlot(ctx context.Context, email, slotID string) (*trainer.Slot, error) {
	var removed trainer.Slot
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		a, err := trainer.FindByEmailTx(tx, r.fs, email, "")
		if errors.Is(err, trainer.ErrNotFound) {
			return fmt.Errorf("%w: %s", trainer.ErrSlotNotFound, slotID)
		}
		if err != nil {
			return err
		}

		removed, err = a.RemoveSlot(slotID)
		if err != nil {
			return err
		}

		var classRef *firestore.DocumentRef
		var remaining []class.TrainerRef
		if removed.ClassID != "" && !a.UsesClass(removed.ClassID) {
			ref := class.Doc(r.fs, removed.ClassID)
			c, err := class.ReadTx(tx, ref)
			switch {
			case errors.Is(err, class.ErrNotFound):
				// class already gone
			case err != nil:
				return err
			case c.HasTrainer(email):
				classRef = ref
				remaining = withoutTrainer(c.Trainers, email)
			}
		}

		if err := trainer.UpdateSlotsTx(tx, trainer.Doc(r.fs, a.ID), a.Slots); err != nil {
			return err
		}
		if classRef != nil {
			return tx.Update(classRef, []firestore.Update{{Path: "trainer", Value: remaining}})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func refFor(a trainer.Application) class.TrainerRef {
	return class.TrainerRef{
		TrainerID:    a.ID,
		TrainerName:  a.FullName,
		TrainerEmail: a.Email,
		TrainerImage: a.ProfileImage,
	}
}

func withoutTrainer(refs []class.TrainerRef, email string) []class.TrainerRef {
	out := make([]class.TrainerRef, 0, len(refs))
	for _, t := range refs {
		if !strings.EqualFold(t.TrainerEmail, email) {
			out = append(out, t)
		}
	}
	return out
}
