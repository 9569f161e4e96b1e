package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// HumaLoggingMiddleware gives Huma operations the same request logging as
// the plain handlers: a LogData in the context, a duration timing and a
// Start/Complete log line pair named after the operation.
func HumaLoggingMiddleware(log *logrus.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		loggingName := ctx.Operation().OperationID
		log.Infof("Handler.%v.Start", loggingName)
		logData := NewLogData(log)

		ctx = huma.WithContext(ctx, WithLogData(ctx.Context(), logData))

		endTimer := logData.AddTiming("duration")
		next(ctx)
		endTimer()

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
