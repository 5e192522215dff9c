package error_notificator

import (
	"context"
	"errors"
)

type Service struct {
	infras []Notificator
}

func NewService(infras ...Notificator) *Service {
	return &Service{infras: infras}
}

// Notify delivers to every channel and joins the failures.
func (s *Service) Notify(ctx context.Context, err error, details string) error {
	var errs []error
	for _, in := range s.infras {
		if nerr := in.Notify(ctx, err, details); nerr != nil {
			errs = append(errs, nerr)
		}
	}
	return errors.Join(errs...)
}
