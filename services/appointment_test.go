package services

import (
	"testing"
	"time"

	"ClinicSphere/models"
	"ClinicSphere/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDisplayStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour).Format(time.RFC3339)
	tomorrow := now.Add(24 * time.Hour).Format(time.RFC3339)

	// a past appointment still stored as Upcoming reads as Completed
	assert.Equal(t, util.StatusCompleted, DeriveDisplayStatus(util.StatusUpcoming, yesterday, now))

	// a future one stays Upcoming
	assert.Equal(t, util.StatusUpcoming, DeriveDisplayStatus(util.StatusUpcoming, tomorrow, now))

	// Cancelled never flips, past or not
	assert.Equal(t, util.StatusCancelled, DeriveDisplayStatus(util.StatusCancelled, yesterday, now))
	assert.Equal(t, util.StatusCancelled, DeriveDisplayStatus(util.StatusCancelled, tomorrow, now))

	// an unparseable date falls back to the stored status
	assert.Equal(t, util.StatusUpcoming, DeriveDisplayStatus(util.StatusUpcoming, "not-a-date", now))
}

func TestSortByStatusPriority(t *testing.T) {
	responses := []AppointmentResponse{
		{ID: "a", Status: util.StatusCancelled},
		{ID: "b", Status: util.StatusCompleted},
		{ID: "c", Status: util.StatusUpcoming},
		{ID: "d", Status: util.StatusCompleted},
		{ID: "e", Status: util.StatusUpcoming},
	}

	SortByStatusPriority(responses)

	statuses := make([]string, 0, len(responses))
	for _, r := range responses {
		statuses = append(statuses, r.Status)
	}
	assert.Equal(t, []string{
		util.StatusUpcoming,
		util.StatusUpcoming,
		util.StatusCompleted,
		util.StatusCompleted,
		util.StatusCancelled,
	}, statuses)

	// the sort is stable, equal statuses keep their order
	assert.Equal(t, "c", responses[0].ID)
	assert.Equal(t, "e", responses[1].ID)
}

func TestTimeSlotHelpers(t *testing.T) {
	slotA := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	slotB := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	times := []time.Time{slotA, slotB}

	assert.True(t, HasTimeSlot(times, slotA))
	assert.False(t, HasTimeSlot(times, slotA.Add(time.Hour*5)))

	removed := RemoveTimeSlot(times, slotA)
	require.Len(t, removed, 1)
	assert.True(t, removed[0].Equal(slotB))

	// releasing a slot that is already listed must not duplicate it
	released := AddTimeSlot(times, slotA)
	assert.Len(t, released, 2)

	released = AddTimeSlot(removed, slotA)
	assert.Len(t, released, 2)
	assert.True(t, HasTimeSlot(released, slotA))
}

func TestRemoveTimeSlotDropsDuplicates(t *testing.T) {
	slot := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	times := []time.Time{slot, slot, slot.Add(time.Hour)}

	removed := RemoveTimeSlot(times, slot)
	assert.Len(t, removed, 1)
	assert.False(t, HasTimeSlot(removed, slot))
}

func TestCancellationRefund(t *testing.T) {
	appointment := &models.Appointment{
		PaidByPatient: 120,
		PaidToDoctor:  80,
	}

	refund, clawback := CancellationRefund(appointment, true)
	assert.Equal(t, 120.0, refund)
	assert.Equal(t, 80.0, clawback)

	refund, clawback = CancellationRefund(appointment, false)
	assert.Equal(t, 0.0, refund)
	assert.Equal(t, 0.0, clawback)
}
