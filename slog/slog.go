// Package slog provides logging decorators for casebot services using log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/casebot"
)

// logCall logs a finished call at Info, or at Warn with the error code and
// message when err is set.
func logCall(ctx context.Context, logger *slog.Logger, msg string, begin time.Time, err error, attrs ...any) {
	attrs = append(attrs, "duration", time.Since(begin))
	if err != nil {
		attrs = append(attrs, "code", casebot.ErrorCode(err), "err", err)
		logger.WarnContext(ctx, msg, attrs...)
		return
	}
	logger.InfoContext(ctx, msg, attrs...)
}
