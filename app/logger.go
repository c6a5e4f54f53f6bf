package app

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// InitLogger applies the configured log level. An empty or unknown level
// falls back to info so a config typo never silences the service.
func InitLogger() {
	level, err := log.ParseLevel(strings.ToLower(Config.Logger.Level))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.Info("[LOGGER] Log level set to: ", level.String())
}
