package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SETSPLIT_ENV", "test")

	p := &Paths{
		configDir:      "setsplit",
		configFileName: "config.yml",
		dbFileName:     "setsplit.db",
		logFileName:    "setsplit.log",
	}

	p.applyEnvironmentOverrides()

	assert.Equal(t, "config_test.yml", p.configFileName)
	assert.Equal(t, "setsplit_test.db", p.dbFileName)
	assert.Equal(t, "setsplit_test.log", p.logFileName)
}

func TestStripExtension(t *testing.T) {
	assert.Equal(t, "live-set", StripExtension("live-set.yml"))
	assert.Equal(t, "archive.tar", StripExtension("archive.tar.gz"))
	assert.Equal(t, "noext", StripExtension("noext"))
}
