package logger

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/apperr"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/contextx"
)

func Error(ctx context.Context, loggingErr error) *zerolog.Event {
	return log(ctx, apperr.LogLevelOf(loggingErr), loggingErr)
}

func Warn(ctx context.Context, loggingErr error) *zerolog.Event {
	return log(ctx, apperr.LogLevelWarn, loggingErr)
}

func log(ctx context.Context, level apperr.LogLevel, loggingErr error) *zerolog.Event {
	ctx = context.WithoutCancel(ctx)
	event := zerolog.Ctx(ctx).WithLevel(toZerologLevel(level))

	currentUser, err := contextx.GetUser(ctx)
	if err != nil {
		if !errors.Is(err, contextx.ErrNotFound) && apperr.CodeOf(err) != apperr.CodeUnauthorized {
			zerolog.Ctx(ctx).Error().Err(err).Msg("logger.log: GetUser")
		}
	} else {
		event = event.
			Str("current_user_id", currentUser.ID).
			Str("current_user_role", currentUser.Role)
	}

	if loggingErr != nil {
		event = event.Err(loggingErr)
	}

	return event
}

func toZerologLevel(level apperr.LogLevel) zerolog.Level {
	switch level {
	case apperr.LogLevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
