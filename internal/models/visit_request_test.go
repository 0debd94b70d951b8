package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisitStatus(t *testing.T) {
	for _, s := range []string{"pending", "assigned", "completed", "cancelled"} {
		st, err := ParseVisitStatus(s)
		require.NoError(t, err)
		assert.Equal(t, VisitStatus(s), st)
	}

	for _, s := range []string{"", "PENDING", "archived", "done"} {
		_, err := ParseVisitStatus(s)
		assert.ErrorIs(t, err, ErrUnknownVisitStatus, s)
	}
}

func TestVisitStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to VisitStatus
		want     bool
	}{
		{VisitStatusPending, VisitStatusAssigned, true},
		{VisitStatusPending, VisitStatusCancelled, true},
		{VisitStatusPending, VisitStatusCompleted, false},
		{VisitStatusAssigned, VisitStatusCompleted, true},
		{VisitStatusAssigned, VisitStatusCancelled, true},
		{VisitStatusAssigned, VisitStatusPending, false},
		{VisitStatusCompleted, VisitStatusCancelled, false},
		{VisitStatusCompleted, VisitStatusPending, false},
		{VisitStatusCancelled, VisitStatusAssigned, false},
		{VisitStatusCompleted, VisitStatusCompleted, true},
		{VisitStatusPending, VisitStatusPending, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestVisitStatus_IsTerminal(t *testing.T) {
	assert.False(t, VisitStatusPending.IsTerminal())
	assert.False(t, VisitStatusAssigned.IsTerminal())
	assert.True(t, VisitStatusCompleted.IsTerminal())
	assert.True(t, VisitStatusCancelled.IsTerminal())
}

func TestParsePropertyStatus(t *testing.T) {
	st, ok := ParsePropertyStatus("sold")
	assert.True(t, ok)
	assert.Equal(t, PropertyStatusSold, st)

	_, ok = ParsePropertyStatus("demolished")
	assert.False(t, ok)
}
