package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/training-capacity-api/internal/models"
)

func seedTrainers(t *testing.T, s *Store, ids ...string) {
	t.Helper()
	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error {
		for _, id := range ids {
			tx.PutTrainer(models.Trainer{ID: id, Name: "trainer " + id, IsActive: true, Specialties: []string{"go"}})
		}
		return nil
	}))
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := New()
	seedTrainers(t, s, "c", "a", "b")

	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error {
		tr, ok := tx.Trainer("a")
		require.True(t, ok)
		tr.Name = "renamed"
		tx.PutTrainer(tr)
		return nil
	}))

	var ids []string
	require.NoError(t, s.View(context.Background(), func(tx *ReadTx) error {
		for _, tr := range tx.Trainers() {
			ids = append(ids, tr.ID)
		}
		return nil
	}))
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestUpdateRollsBackOnError(t *testing.T) {
	s := New()
	seedTrainers(t, s, "t1", "t2", "t3")
	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error {
		tx.PutGroup(models.TrainingGroup{ID: "g1", Name: "G1"})
		tx.PutGroup(models.TrainingGroup{ID: "g2", Name: "G2"})
		return nil
	}))
	before := s.Version()

	boom := errors.New("boom")
	err := s.Update(context.Background(), func(tx *Tx) error {
		tr, _ := tx.Trainer("t2")
		tr.CurrentHoursPerWeek = 99
		tx.PutTrainer(tr)
		tx.PutTrainer(models.Trainer{ID: "t4"})
		assert.True(t, tx.DeleteGroup("g1"))
		tx.UpsertAssignment(models.ModuleTrainerAssignment{ID: "a1", ModuleID: "m1", TrainerID: "t1", CanTeach: true})
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, before, s.Version())

	require.NoError(t, s.View(context.Background(), func(tx *ReadTx) error {
		trainers := tx.Trainers()
		require.Len(t, trainers, 3)
		assert.Zero(t, trainers[1].CurrentHoursPerWeek)
		groups := tx.Groups()
		require.Len(t, groups, 2)
		assert.Equal(t, "g1", groups[0].ID)
		assert.Empty(t, tx.Assignments())
		return nil
	}))
}

func TestUpsertAssignmentIsUniquePerPair(t *testing.T) {
	s := New()
	var created []bool
	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error {
		_, c1 := tx.UpsertAssignment(models.ModuleTrainerAssignment{ID: "a1", ModuleID: "m1", TrainerID: "t1", CanTeach: true})
		stored, c2 := tx.UpsertAssignment(models.ModuleTrainerAssignment{ID: "a2", ModuleID: "m1", TrainerID: "t1", CanTeach: false})
		assert.Equal(t, "a1", stored.ID)
		created = append(created, c1, c2)
		return nil
	}))
	assert.Equal(t, []bool{true, false}, created)

	require.NoError(t, s.View(context.Background(), func(tx *ReadTx) error {
		all := tx.Assignments()
		require.Len(t, all, 1)
		assert.False(t, all[0].CanTeach)
		return nil
	}))
}

func TestUpdateWithoutChangesKeepsVersion(t *testing.T) {
	s := New()
	seedTrainers(t, s, "t1")
	version := s.Version()

	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error {
		tx.UpsertAssignment(models.ModuleTrainerAssignment{ID: "a1", ModuleID: "m1", TrainerID: "t1", CanTeach: true})
		return nil
	}))
	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error {
		tx.UpsertAssignment(models.ModuleTrainerAssignment{ModuleID: "m1", TrainerID: "t1", CanTeach: true})
		return nil
	}))

	assert.Equal(t, version+1, s.Version())
}

func TestDeleteGroupKeepsSchedulesButHidesThemFromLiveView(t *testing.T) {
	s := New()
	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error {
		tx.PutGroup(models.TrainingGroup{ID: "g1"})
		tx.PutSchedule(models.GroupModuleSchedule{ID: "s1", GroupID: "g1", ScheduledOrder: 2})
		tx.PutSchedule(models.GroupModuleSchedule{ID: "s2", GroupID: "g1", ScheduledOrder: 1})
		return nil
	}))

	require.NoError(t, s.View(context.Background(), func(tx *ReadTx) error {
		ordered := tx.GroupSchedules("g1")
		require.Len(t, ordered, 2)
		assert.Equal(t, "s2", ordered[0].ID)
		return nil
	}))

	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error {
		assert.True(t, tx.DeleteGroup("g1"))
		assert.False(t, tx.DeleteGroup("g1"))
		return nil
	}))

	require.NoError(t, s.View(context.Background(), func(tx *ReadTx) error {
		assert.Len(t, tx.Schedules(), 2)
		assert.Empty(t, tx.LiveSchedules())
		return nil
	}))
}

func TestReadsReturnCopies(t *testing.T) {
	s := New()
	seedTrainers(t, s, "t1")

	require.NoError(t, s.View(context.Background(), func(tx *ReadTx) error {
		tr, _ := tx.Trainer("t1")
		tr.Specialties[0] = "mutated"
		return nil
	}))

	require.NoError(t, s.View(context.Background(), func(tx *ReadTx) error {
		tr, _ := tx.Trainer("t1")
		assert.Equal(t, "go", tr.Specialties[0])
		return nil
	}))
}

func TestCommitListenersFireOnChange(t *testing.T) {
	s := New()
	var versions []uint64
	s.OnCommit(func(_ context.Context, v uint64) { versions = append(versions, v) })

	seedTrainers(t, s, "t1")
	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error { return nil }))
	_ = s.Update(context.Background(), func(tx *Tx) error {
		tx.PutTrainer(models.Trainer{ID: "t2"})
		return errors.New("rejected")
	})

	assert.Equal(t, []uint64{1}, versions)
}

func TestCancelledContextIsRejected(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Update(ctx, func(tx *Tx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	err = s.View(ctx, func(tx *ReadTx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentUpdatesAreSerialised(t *testing.T) {
	s := New()
	seedTrainers(t, s, "t1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(context.Background(), func(tx *Tx) error {
				tr, _ := tx.Trainer("t1")
				tr.CurrentHoursPerWeek++
				tx.PutTrainer(tr)
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, s.View(context.Background(), func(tx *ReadTx) error {
		tr, _ := tx.Trainer("t1")
		assert.Equal(t, float64(50), tr.CurrentHoursPerWeek)
		return nil
	}))
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := New()
	seedTrainers(t, s, "b", "a")
	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error {
		tx.UpsertAssignment(models.ModuleTrainerAssignment{ID: "x", ModuleID: "m", TrainerID: "a", CanTeach: true})
		return nil
	}))

	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.Empty())

	restored := New()
	require.NoError(t, restored.Restore(context.Background(), snap))
	assert.Equal(t, snap.Version, restored.Version())

	require.NoError(t, restored.View(context.Background(), func(tx *ReadTx) error {
		trainers := tx.Trainers()
		require.Len(t, trainers, 2)
		assert.Equal(t, "b", trainers[0].ID)
		a, ok := tx.Assignment("m", "a")
		assert.True(t, ok)
		assert.Equal(t, "x", a.ID)
		return nil
	}))
}
