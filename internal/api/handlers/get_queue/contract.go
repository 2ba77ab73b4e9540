package get_queue

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/usecase/get_queue"
)

type UseCase interface {
	Execute(ctx context.Context, req *get_queue.Request) (*get_queue.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
