package twilio_webhook

import (
	"context"

	intakeMessage "github.com/m04kA/SMC-BarberService/internal/usecase/intake_message"
)

type IntakeUseCase interface {
	Execute(ctx context.Context, req *intakeMessage.Request) (*intakeMessage.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
