package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingCancelTransitions(t *testing.T) {
	now := time.Now()

	b := &Booking{Status: BookingStatusPending}
	require.NoError(t, b.Cancel(now))
	assert.Equal(t, BookingStatusCancelled, b.Status)
	require.NotNil(t, b.CancelledAt)

	// Terminal states stay terminal.
	for _, status := range []BookingStatus{BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow} {
		b := &Booking{Status: status}
		assert.Error(t, b.Cancel(now))
		assert.Error(t, b.Complete(now))
		assert.Error(t, b.MarkNoShow())
		assert.True(t, b.IsTerminal())
	}

	awaiting := &Booking{Status: BookingStatusAwaitingApproval}
	require.NoError(t, awaiting.Cancel(now))
}

func TestBookingCompleteAndNoShowRequirePending(t *testing.T) {
	now := time.Now()

	b := &Booking{Status: BookingStatusPending}
	require.NoError(t, b.Complete(now))
	assert.Equal(t, BookingStatusCompleted, b.Status)
	require.NotNil(t, b.CompletedAt)

	awaiting := &Booking{Status: BookingStatusAwaitingApproval}
	assert.Error(t, awaiting.Complete(now))
	assert.Error(t, awaiting.MarkNoShow())

	ns := &Booking{Status: BookingStatusPending}
	require.NoError(t, ns.MarkNoShow())
	assert.Equal(t, BookingStatusNoShow, ns.Status)
}

func TestBookingApprove(t *testing.T) {
	b := &Booking{Status: BookingStatusAwaitingApproval}
	require.NoError(t, b.Approve())
	assert.Equal(t, BookingStatusPending, b.Status)

	assert.Error(t, b.Approve())
}

func TestFreeCancelActiveRespectsExpiry(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.False(t, (&Booking{}).FreeCancelActive(now))
	assert.False(t, (&Booking{HasFreeCancel: true}).FreeCancelActive(now))
	assert.True(t, (&Booking{HasFreeCancel: true, FreeCancelExpiresAt: &future}).FreeCancelActive(now))
	assert.False(t, (&Booking{HasFreeCancel: true, FreeCancelExpiresAt: &past}).FreeCancelActive(now))
}

func TestEffectivePriceAndCapacity(t *testing.T) {
	override := int64(1200)
	template := &ClassTemplate{BasePrice: 800}
	venue := &Venue{Capacity: 25}

	assert.Equal(t, int64(800), (&ClassInstance{}).EffectivePrice(template))
	assert.Equal(t, int64(1200), (&ClassInstance{PriceOverride: &override}).EffectivePrice(template))
	assert.Equal(t, int64(0), (&ClassInstance{}).EffectivePrice(nil))

	assert.Equal(t, 10, (&ClassInstance{Capacity: 10}).EffectiveCapacity(venue))
	assert.Equal(t, 25, (&ClassInstance{}).EffectiveCapacity(venue))
	assert.Equal(t, 0, (&ClassInstance{}).EffectiveCapacity(nil))
}

func TestTimePatternFor(t *testing.T) {
	start := time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "18:00-19:30", TimePatternFor(start, start.Add(90*time.Minute)))
}
