package observability

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger tags the global logger with the app name and a fresh run id,
// returning the logger and the id.
func InitLogger(app string) (zerolog.Logger, string) {
	runID := uuid.NewString()
	logger := log.Logger.With().Str("app", app).Str("run", runID).Logger()
	log.Logger = logger
	return logger, runID
}
