package notification

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
)

// Fanout sends each notification to every wrapped notifier. A failing notifier does
// not stop the others; their errors are joined.
type Fanout struct {
	notifiers []ports.Notifier
}

// NewFanout composes notifiers in the given order. Nil entries are skipped.
func NewFanout(notifiers ...ports.Notifier) *Fanout {
	f := &Fanout{}
	for _, n := range notifiers {
		if n != nil {
			f.notifiers = append(f.notifiers, n)
		}
	}
	return f
}

func (f *Fanout) EmitToUser(ctx context.Context, userID kernel.UUID, n ports.Notification) error {
	return f.each(func(target ports.Notifier) error { return target.EmitToUser(ctx, userID, n) })
}

func (f *Fanout) EmitToRestaurant(ctx context.Context, restaurantID kernel.UUID, n ports.Notification) error {
	return f.each(func(target ports.Notifier) error { return target.EmitToRestaurant(ctx, restaurantID, n) })
}

func (f *Fanout) EmitToChannel(ctx context.Context, channel string, n ports.Notification) error {
	return f.each(func(target ports.Notifier) error { return target.EmitToChannel(ctx, channel, n) })
}

func (f *Fanout) each(emit func(ports.Notifier) error) error {
	var errList []error
	for _, target := range f.notifiers {
		if err := emit(target); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
