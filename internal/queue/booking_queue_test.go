package queue_test

import (
	"context"
	"testing"
	"time"

	"go-tour-booking/internal/model"
	"go-tour-booking/internal/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveDelivery(t *testing.T, deliveries <-chan queue.Delivery) queue.Delivery {
	t.Helper()
	select {
	case d := <-deliveries:
		return d
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
		return queue.Delivery{}
	}
}

func TestBookingQueue_PublishSubscribe(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewBookingQueue(8)
		deliveries, err := q.SubscribeBookings(ctx)
		require.NoError(t, err)

		booking := &model.Booking{BookingID: uuid.New(), Total: 200}
		require.NoError(t, q.PublishBooking(ctx, booking))

		d := receiveDelivery(t, deliveries)
		require.NotNil(t, d.Data)
		assert.Equal(t, booking.BookingID, d.Data.BookingID)
		d.Ack()
	})

	t.Run("Success - nack requeues the booking", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewBookingQueue(8)
		deliveries, err := q.SubscribeBookings(ctx)
		require.NoError(t, err)

		booking := &model.Booking{BookingID: uuid.New()}
		require.NoError(t, q.PublishBooking(ctx, booking))

		first := receiveDelivery(t, deliveries)
		first.Nack(true)

		second := receiveDelivery(t, deliveries)
		assert.Equal(t, booking.BookingID, second.Data.BookingID)
		second.Ack()
	})

	t.Run("Success - nack without requeue drops the booking", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewBookingQueue(8)
		deliveries, err := q.SubscribeBookings(ctx)
		require.NoError(t, err)

		require.NoError(t, q.PublishBooking(ctx, &model.Booking{BookingID: uuid.New()}))
		d := receiveDelivery(t, deliveries)
		d.Nack(false)

		select {
		case redelivered := <-deliveries:
			t.Fatalf("unexpected redelivery: %v", redelivered.Data.BookingID)
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("Success - cancel stops the subscription", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		q := queue.NewBookingQueue(8)
		deliveries, err := q.SubscribeBookings(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, open := <-deliveries:
			assert.False(t, open, "delivery channel should close after cancel")
		case <-time.After(time.Second):
			t.Fatal("delivery channel did not close")
		}
	})
}
