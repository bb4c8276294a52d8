package catalogservice

import (
	"context"
	"reflect"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

// WatchActiveServices отдает живую последовательность снимков активных услуг.
// Первый снимок приходит сразу, следующие только при изменении набора.
// Каталог опрашивается с интервалом interval; канал закрывается с отменой ctx.
func (c *Client) WatchActiveServices(ctx context.Context, interval time.Duration) <-chan []domain.ServiceDescriptor {
	out := make(chan []domain.ServiceDescriptor, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var last []domain.ServiceDescriptor
		first := true

		for {
			services, err := c.GetActiveServices(ctx)
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return
				}
				c.log.Warn("WatchActiveServices: poll failed: %v", err)
			case first || !reflect.DeepEqual(last, services):
				select {
				case out <- services:
				case <-ctx.Done():
					return
				}
				last = services
				first = false
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return out
}
