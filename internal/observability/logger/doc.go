// Package logger provee el logger estructurado (zap) de la aplicación.
//
// Uso típico:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: "info"})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Enroll"))
//	log.Info("enrolled", logger.CourseID(id))
//
// Los middlewares HTTP inyectan un logger scoped con request_id en el
// contexto; From(ctx) lo recupera o cae al singleton.
package logger
