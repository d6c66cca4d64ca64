package service

import "context"

// Service is a long-running component that is run by the app until the
// given context.Context is done.
type Service interface {
	// Run the service. It blocks until the context.Context is done or a fatal
	// error occurred.
	Run(ctx context.Context) error
}

// Func allows using a function as Service.
type Func func(ctx context.Context) error

func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}
