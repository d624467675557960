package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleWeeklyLoadAndDuration(t *testing.T) {
	cases := []struct {
		name     string
		module   Module
		load     float64
		duration int
	}{
		{"exact", Module{TotalHours: 40, SessionsPerWeek: 2, HoursPerSession: 2}, 4, 10},
		{"rounds up", Module{TotalHours: 41, SessionsPerWeek: 2, HoursPerSession: 2}, 4, 11},
		{"fractional session", Module{TotalHours: 30, SessionsPerWeek: 3, HoursPerSession: 2.5}, 7.5, 4},
		{"no sessions", Module{TotalHours: 30, SessionsPerWeek: 0, HoursPerSession: 2}, 0, 0},
		{"no hours", Module{TotalHours: 0, SessionsPerWeek: 2, HoursPerSession: 2}, 4, 0},
		{"capped", Module{TotalHours: 10000, SessionsPerWeek: 1, HoursPerSession: 0.25}, 0.25, MaxDurationWeeks},
		{"tiny load does not overflow", Module{TotalHours: 1000000, SessionsPerWeek: 1, HoursPerSession: 1e-300}, 1e-300, MaxDurationWeeks},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.load, tc.module.WeeklyLoad(), 1e-9)
			assert.Equal(t, tc.duration, tc.module.DurationWeeks())
		})
	}
}

func TestGroupHasRoom(t *testing.T) {
	empty := ""
	room := "r1"
	assert.False(t, TrainingGroup{}.HasRoom())
	assert.False(t, TrainingGroup{RoomID: &empty}.HasRoom())
	assert.True(t, TrainingGroup{RoomID: &room}.HasRoom())
}
