package queue

import (
	"context"

	"go-tour-booking/internal/model"
)

type Delivery struct {
	Data *model.Booking
	Ack  func()
	Nack func(requeue bool)
}

// BookingQueue decouples submission acceptance from persistence: the API
// publishes a validated booking and a worker drains the queue into Postgres.
type BookingQueue interface {
	PublishBooking(ctx context.Context, booking *model.Booking) error
	SubscribeBookings(ctx context.Context) (<-chan Delivery, error)
}

// BookingQueueImpl is an in-process channel-backed queue, used in tests and
// single-node deployments.
type BookingQueueImpl struct {
	ch chan *model.Booking
}

func NewBookingQueue(bufferSize int) BookingQueue {
	return &BookingQueueImpl{
		ch: make(chan *model.Booking, bufferSize),
	}
}

func (q *BookingQueueImpl) PublishBooking(ctx context.Context, booking *model.Booking) error {
	q.ch <- booking
	return nil
}

func (q *BookingQueueImpl) SubscribeBookings(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case booking, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: booking,
					Ack:  func() { /* nothing to settle in memory */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- booking
						}
					},
				}
			}
		}
	}()

	return out, nil
}
