package services

import (
	"context"
	"log/slog"

	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/result"
)

// fail sorts err into an expected failure carried by the Result or an
// infrastructure fault returned as the error.
func fail[T any](err error) (result.Result[T], error) {
	if appErr, ok := apperrors.As(err); ok {
		return result.Fail[T](appErr), nil
	}
	return result.Result[T]{}, err
}

// failLookup is fail for reads; a miss is logged at warn level.
func failLookup[T any](ctx context.Context, logger *slog.Logger, err error, attrs ...any) (result.Result[T], error) {
	res, err := fail[T](err)
	if err == nil && res.Kind() == apperrors.KindNotFound {
		logger.WarnContext(ctx, res.Message(), attrs...)
	}
	return res, err
}

func done() result.Result[struct{}] {
	return result.Ok(struct{}{})
}
