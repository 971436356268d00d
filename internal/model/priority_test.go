package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeight(t *testing.T) {
	assert.Equal(t, 1, Weight(PriorityHigh))
	assert.Equal(t, 2, Weight(PriorityMedium))
	assert.Equal(t, 3, Weight(PriorityLow))
	assert.Equal(t, 4, Weight(PriorityNone))
	assert.Equal(t, 4, Weight(Priority("urgent")))
}

func TestSortTasks(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tasks := []Task{
		{ID: 1, Priority: PriorityLow, CreatedAt: base},
		{ID: 2, Priority: PriorityHigh, CreatedAt: base.Add(time.Minute)},
		{ID: 3, Priority: PriorityMedium, CreatedAt: base.Add(2 * time.Minute)},
	}

	SortTasks(tasks)

	assert.Equal(t, int64(2), tasks[0].ID)
	assert.Equal(t, int64(3), tasks[1].ID)
	assert.Equal(t, int64(1), tasks[2].ID)
}

func TestSortTasks_NewestFirstWithinPriority(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tasks := []Task{
		{ID: 1, Priority: PriorityHigh, CreatedAt: base},
		{ID: 2, Priority: PriorityHigh, CreatedAt: base.Add(time.Hour)},
	}

	SortTasks(tasks)

	assert.Equal(t, int64(2), tasks[0].ID)
	assert.Equal(t, int64(1), tasks[1].ID)
}
