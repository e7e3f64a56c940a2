package worker

import (
	"context"

	"go-tour-booking/internal/queue"
	"go-tour-booking/internal/service"
	"go-tour-booking/pkg/logger"

	"go.uber.org/zap"
)

type BookingWorker interface {
	Start(ctx context.Context) error
}

// BookingWorkerImpl drains the booking queue into Postgres. Persistence
// failures are nacked for delayed retry; successes are acked.
type BookingWorkerImpl struct {
	service service.BookingService
	queue   queue.BookingQueue
}

func NewBookingWorker(service service.BookingService, queue queue.BookingQueue) BookingWorker {
	return &BookingWorkerImpl{
		service: service,
		queue:   queue,
	}
}

func (w *BookingWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeBookings(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			err := w.service.DispatchBooking(ctx, msg.Data)

			if err != nil {
				logger.WithComponent("worker").Warn("dispatch booking failed, will retry",
					zap.String("request_id", msg.Data.RequestID), zap.Error(err))
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
