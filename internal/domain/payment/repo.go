package payment

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"fitness-tracker/backend/internal/docstore"
	"fitness-tracker/backend/internal/domain/class"
	"fitness-tracker/backend/internal/domain/trainer"

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
	return r.fs.Collection(docstore.ColPayments)
}

// Record stores rec, appends b to the booked slot and bumps the class
// counter in one transaction. A transaction id can only be recorded once.
func (r *Repo) Record(ctx context.Context, rec Record, b trainer.Booking) (*Record, error) {
	payRef := r.col().Doc(rec.TransactionID)
	appRef := trainer.Doc(r.fs, rec.TrainerID)

	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(payRef); err == nil {
			return fmt.Errorf("%w: %s", ErrDuplicate, rec.TransactionID)
		} else if !docstore.IsNotFound(err) {
			return err
		}

		a, err := trainer.ReadTx(tx, appRef)
		if err != nil {
			return err
		}
		slot, err := a.AddBooking(rec.SlotID, b)
		if err != nil {
			return err
		}
		if rec.ClassID == "" {
			rec.ClassID = slot.ClassID
		}
		if rec.ClassName == "" {
			rec.ClassName = slot.ClassName
		}
		if rec.SlotName == "" {
			rec.SlotName = slot.SlotName
		}
		if rec.TrainerName == "" {
			rec.TrainerName = a.FullName
		}

		var classRef *firestore.DocumentRef
		if rec.ClassID != "" {
			ref := class.Doc(r.fs, rec.ClassID)
			_, err := class.ReadTx(tx, ref)
			switch {
			case err == nil:
				classRef = ref
			case !errors.Is(err, class.ErrNotFound):
				return err
			}
		}

		if err := tx.Create(payRef, rec); err != nil {
			return err
		}
		if err := trainer.UpdateSlotsTx(tx, appRef, a.Slots); err != nil {
			return err
		}
		if classRef != nil {
			return tx.Update(classRef, []firestore.Update{{Path: "totalBooked", Value: firestore.Increment(1)}})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repo) History(ctx context.Context, email string) ([]Record, error) {
	it := r.col().Where("studentEmail", "==", email).Documents(ctx)
	recs, err := docstore.Collect[Record](it, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].PaidAt.After(recs[j].PaidAt) })
	return recs, nil
}

func (r *Repo) All(ctx context.Context) ([]Record, error) {
	it := r.col().OrderBy("paidAt", firestore.Desc).Documents(ctx)
	return docstore.Collect[Record](it, nil)
}

func (r *Repo) Recent(ctx context.Context, n int) ([]Record, error) {
	it := r.col().OrderBy("paidAt", firestore.Desc).Limit(n).Documents(ctx)
	return docstore.Collect[Record](it, nil)
}

// TotalAmount sums every recorded amount server side.
func (r *Repo) TotalAmount(ctx context.Context) (float64, error) {
	res, err := r.col().NewAggregationQuery().WithSum("amount", "total").Get(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := res["total"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected sum result %T", res["total"])
	}
	switch x := v.GetValueType().(type) {
	case *firestorepb.Value_IntegerValue:
		return float64(x.IntegerValue), nil
	case *firestorepb.Value_DoubleValue:
		return x.DoubleValue, nil
	default:
		return 0, nil
	}
}

// DistinctStudents counts the students with at least one payment.
func (r *Repo) DistinctStudents(ctx context.Context) (int, error) {
	docs, err := r.col().Select("studentEmail").Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		if email, ok := d.Data()["studentEmail"].(string); ok && email != "" {
			seen[email] = struct{}{}
		}
	}
	return len(seen), nil
}

func (r *Repo) MarkGatewayStatus(ctx context.Context, transactionID, status string) error {
	_, err := r.col().Doc(transactionID).Update(ctx, []firestore.Update{{Path: "gatewayStatus", Value: status}})
	if docstore.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, transactionID)
	}
	return err
}

// LogEvent stores a webhook event under its id so redeliveries overwrite.
func (r *Repo) LogEvent(ctx context.Context, ev Event) error {
	_, err := r.fs.Collection(docstore.ColStripeEvents).Doc(ev.ID).Set(ctx, ev)
	return err
}
