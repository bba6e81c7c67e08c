package factory

import "context"

// Engine runs one polling and reporting cycle
type Engine interface {
	Process(ctx context.Context)
	IsInterfaceNil() bool
}
