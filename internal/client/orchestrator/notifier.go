package orchestrator

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes verification codes to the log. It stands in for an
// email provider during development.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) SendCode(_ context.Context, email, code string) error {
	n.Log.Info().Str("email", email).Str("code", code).Msg("verification code issued")
	return nil
}
