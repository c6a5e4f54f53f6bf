package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/zoriumlabs/zorium-ledger/models"
)

func TestInitLogger(t *testing.T) {
	defer func() {
		Config = models.Config{}
		log.SetLevel(log.InfoLevel)
	}()

	t.Run("Debug Level", func(t *testing.T) {
		Config.Logger.Level = "debug"

		InitLogger()

		assert.Equal(t, log.DebugLevel, log.GetLevel())
	})

	t.Run("Warn Level Uppercase", func(t *testing.T) {
		Config.Logger.Level = "WARN"

		InitLogger()

		assert.Equal(t, log.WarnLevel, log.GetLevel())
	})

	t.Run("Unknown Level Falls Back To Info", func(t *testing.T) {
		Config.Logger.Level = "loud"

		InitLogger()

		assert.Equal(t, log.InfoLevel, log.GetLevel())
	})

	t.Run("Empty Level Falls Back To Info", func(t *testing.T) {
		Config.Logger.Level = ""

		InitLogger()

		assert.Equal(t, log.InfoLevel, log.GetLevel())
	})
}
