package slot

import (
	"context"
	"testing"
	"time"

	"fitness-tracker/backend/internal/domain/class"
	"fitness-tracker/backend/internal/domain/trainer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps applications and classes side by side, applying the same
// rules as Repo's transactions.
type memStore struct {
	apps    map[string]*trainer.Application
	classes map[string]*class.Class
}

func newMemStore() *memStore {
	return &memStore{apps: map[string]*trainer.Application{}, classes: map[string]*class.Class{}}
}

func (m *memStore) byEmail(email string) *trainer.Application {
	for _, a := range m.apps {
		if a.Email == email {
			return a
		}
	}
	return nil
}

func (m *memStore) ApprovedByEmail(_ context.Context, email string) (*trainer.Application, error) {
	a := m.byEmail(email)
	if a == nil || !a.IsApproved() {
		return nil, ErrNotApproved
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) Application(_ context.Context, id string) (*trainer.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return nil, trainer.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) AppendSlot(_ context.Context, email string, s trainer.Slot) (*trainer.Slot, error) {
	a := m.byEmail(email)
	if a == nil || !a.IsApproved() {
		return nil, ErrNotApproved
	}
	c, ok := m.classes[s.ClassID]
	if !ok {
		return nil, class.ErrNotFound
	}
	next := *c
	next.Trainers = append([]class.TrainerRef{}, c.Trainers...)
	if !next.HasTrainer(email) {
		if err := next.AddTrainer(refFor(*a)); err != nil {
			return nil, err
		}
	}
	s.ClassName = c.Name
	*c = next
	a.Slots = append(a.Slots, s)
	return &s, nil
}

func (m *memStore) DeleteSlot(_ context.Context, email, slotID string) (*trainer.Slot, error) {
	a := m.byEmail(email)
	if a == nil {
		return nil, trainer.ErrSlotNotFound
	}
	removed, err := a.RemoveSlot(slotID)
	if err != nil {
		return nil, err
	}
	if c, ok := m.classes[removed.ClassID]; ok && !a.UsesClass(removed.ClassID) {
		c.Trainers = withoutTrainer(c.Trainers, email)
	}
	return &removed, nil
}

func setup(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	store.apps["t1"] = &trainer.Application{ID: "t1", FullName: "Kim", Email: "kim@fit.io", Status: trainer.StatusApproved, AvailableDays: []string{"monday"}}
	store.apps["t2"] = &trainer.Application{ID: "t2", FullName: "Pending Pat", Email: "pat@fit.io", Status: trainer.StatusPending}
	store.classes["yoga"] = &class.Class{ID: "yoga", Name: "Yoga", Trainers: []class.TrainerRef{}}
	store.classes["spin"] = &class.Class{ID: "spin", Name: "Spin", Trainers: []class.TrainerRef{}}

	svc := NewService(store)
	ids := []string{"s1", "s2", "s3", "s4"}
	svc.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	svc.now = func() time.Time { return time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestService_Template(t *testing.T) {
	svc, _ := setup(t)

	tpl, err := svc.Template(context.Background(), "KIM@fit.io")
	require.NoError(t, err)
	assert.Equal(t, "Kim", tpl.FullName)
	assert.Equal(t, []string{"monday"}, tpl.AvailableDays)

	_, err = svc.Template(context.Background(), "pat@fit.io")
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestService_Add(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	s, err := svc.Add(ctx, "kim@fit.io", Input{SlotName: "Morning flow", SlotTime: "1h", Day: "Monday", ClassID: "yoga"})
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, "monday", s.Day)
	assert.Equal(t, "Yoga", s.ClassName)
	assert.True(t, store.classes["yoga"].HasTrainer("kim@fit.io"))

	// a second slot in the same class does not duplicate the trainer
	_, err = svc.Add(ctx, "kim@fit.io", Input{Day: "friday", ClassID: "yoga"})
	require.NoError(t, err)
	assert.Len(t, store.classes["yoga"].Trainers, 1)

	_, err = svc.Add(ctx, "kim@fit.io", Input{Day: "friday"})
	assert.ErrorIs(t, err, ErrBadRequest)
	_, err = svc.Add(ctx, "kim@fit.io", Input{ClassID: "yoga"})
	assert.ErrorIs(t, err, ErrBadRequest)
	_, err = svc.Add(ctx, "kim@fit.io", Input{Day: "friday", ClassID: "yoga/sub/doc"})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Add(ctx, "pat@fit.io", Input{Day: "friday", ClassID: "yoga"})
	assert.ErrorIs(t, err, ErrNotApproved)

	_, err = svc.Add(ctx, "kim@fit.io", Input{Day: "friday", ClassID: "missing"})
	assert.ErrorIs(t, err, class.ErrNotFound)
}

func TestService_AddToFullClass(t *testing.T) {
	svc, store := setup(t)
	full := store.classes["spin"]
	for _, e := range []string{"a@fit.io", "b@fit.io", "c@fit.io", "d@fit.io", "e@fit.io"} {
		require.NoError(t, full.AddTrainer(class.TrainerRef{TrainerEmail: e}))
	}

	_, err := svc.Add(context.Background(), "kim@fit.io", Input{Day: "monday", ClassID: "spin"})
	assert.ErrorIs(t, err, class.ErrClassFull)
	assert.Empty(t, store.apps["t1"].Slots)
}

func TestService_Delete(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "kim@fit.io", Input{Day: "monday", ClassID: "yoga"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "kim@fit.io", Input{Day: "tuesday", ClassID: "yoga"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "kim@fit.io", Input{Day: "friday", ClassID: "spin"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "kim@fit.io", "nope")
	assert.ErrorIs(t, err, trainer.ErrSlotNotFound)
	assert.True(t, store.classes["yoga"].HasTrainer("kim@fit.io"))

	_, err = svc.Delete(ctx, "kim@fit.io", "s1")
	require.NoError(t, err)
	assert.True(t, store.classes["yoga"].HasTrainer("kim@fit.io"), "s2 still teaches yoga")

	_, err = svc.Delete(ctx, "kim@fit.io", "s2")
	require.NoError(t, err)
	assert.False(t, store.classes["yoga"].HasTrainer("kim@fit.io"))
	assert.True(t, store.classes["spin"].HasTrainer("kim@fit.io"))

	list, err := svc.List(ctx, "kim@fit.io")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s3", list[0].ID)
}

func TestService_Details(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, "kim@fit.io", Input{SlotName: "Evening", Day: "monday", ClassID: "yoga"})
	require.NoError(t, err)

	d, err := svc.Details(ctx, "t1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Evening", d.SlotName)
	assert.Equal(t, "Kim", d.TrainerName)
	assert.Equal(t, "kim@fit.io", d.TrainerEmail)

	_, err = svc.Details(ctx, "t1", "zzz")
	assert.ErrorIs(t, err, trainer.ErrSlotNotFound)
	_, err = svc.Details(ctx, "nobody", "s1")
	assert.ErrorIs(t, err, trainer.ErrNotFound)
}
