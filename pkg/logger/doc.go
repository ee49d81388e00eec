// Package logger builds *slog.Logger values with functional options and
// injects request scoped attributes from context.Context.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "velve"),
//		logger.WithContextExtractors(requestid.LogExtractor()),
//	)
//	log.InfoContext(ctx, "contact submitted", logger.Component("contact"), logger.Duration(d))
//
// LogHandlerDecorator runs every ContextExtractor on each record so values
// like the request id are read at log time. Attribute helpers keep key names
// consistent; Error returns an empty attribute for nil errors.
package logger
