package class

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(n int) TrainerRef {
	return TrainerRef{TrainerID: fmt.Sprintf("t%d", n), TrainerName: fmt.Sprintf("Coach %d", n), TrainerEmail: fmt.Sprintf("coach%d@fit.io", n)}
}

func TestClass_AddTrainer(t *testing.T) {
	c := Class{Name: "Yoga"}
	for i := 1; i <= MaxTrainers; i++ {
		require.NoError(t, c.AddTrainer(ref(i)))
	}
	assert.Len(t, c.Trainers, MaxTrainers)

	err := c.AddTrainer(ref(6))
	assert.ErrorIs(t, err, ErrClassFull)
	assert.Len(t, c.Trainers, MaxTrainers)
}

func TestClass_AddTrainer_Duplicate(t *testing.T) {
	c := Class{Name: "Yoga"}
	require.NoError(t, c.AddTrainer(ref(1)))

	dup := ref(1)
	dup.TrainerEmail = "COACH1@fit.io"
	assert.ErrorIs(t, c.AddTrainer(dup), ErrTrainerExists)
	assert.Len(t, c.Trainers, 1)
}

func TestClass_DuplicateCheckedBeforeCapacity(t *testing.T) {
	c := Class{Name: "Yoga"}
	for i := 1; i <= MaxTrainers; i++ {
		require.NoError(t, c.AddTrainer(ref(i)))
	}
	assert.ErrorIs(t, c.AddTrainer(ref(3)), ErrTrainerExists)
}

func TestClass_TrainersWithEmail(t *testing.T) {
	c := Class{Trainers: []TrainerRef{ref(1), ref(2)}}
	assert.Equal(t, []TrainerRef{ref(2)}, c.TrainersWithEmail("coach2@fit.io"))
	assert.Empty(t, c.TrainersWithEmail("nobody@fit.io"))
	assert.True(t, IsErrConflict(fmt.Errorf("x: %w", ErrClassFull)))
}
