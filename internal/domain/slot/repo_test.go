package slot

import (
	"context"
	"testing"
	"time"

	"fitness-tracker/backend/internal/domain/class"
	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo_AppendAndDelete(t *testing.T) {
	fs := testutil.Firestore(t)
	ctx := context.Background()
	repo := NewRepo(fs)
	classes := class.NewRepo(fs)
	trainers := trainer.NewRepo(fs)

	yoga, err := classes.Create(ctx, class.Class{Name: "Yoga", Trainers: []class.TrainerRef{}, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	_, err = trainers.Apply(ctx, trainer.Application{FullName: "Kim", Email: "kim@fit.io", Status: trainer.StatusApproved, Slots: []trainer.Slot{}})
	require.NoError(t, err)

	_, err = repo.AppendSlot(ctx, "kim@fit.io", trainer.Slot{ID: "s1", Day: "monday", ClassID: yoga.ID, Bookings: []trainer.Booking{}})
	require.NoError(t, err)

	c, err := classes.Get(ctx, yoga.ID)
	require.NoError(t, err)
	assert.True(t, c.HasTrainer("kim@fit.io"))

	_, err = repo.DeleteSlot(ctx, "kim@fit.io", "unknown")
	assert.ErrorIs(t, err, trainer.ErrSlotNotFound)
	c, err = classes.Get(ctx, yoga.ID)
	require.NoError(t, err)
	assert.Len(t, c.Trainers, 1)

	_, err = repo.DeleteSlot(ctx, "kim@fit.io", "s1")
	require.NoError(t, err)
	c, err = classes.Get(ctx, yoga.ID)
	require.NoError(t, err)
	assert.Empty(t, c.Trainers)
}
