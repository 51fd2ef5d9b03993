package static_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/setsplit/internal/session"
	"github.com/ayoisaiah/setsplit/internal/static"
)

func TestWriteSessionTemplate(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "sets", "live.yml")

	if err := static.WriteSessionTemplate(dest); err != nil {
		t.Fatal(err)
	}

	sess, err := session.Load(dest)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "my-live-set", sess.Name)
	assert.Len(t, sess.Songs, 3)
	assert.Equal(t, "Guest Singer", sess.Songs[2].Artist)
	assert.Equal(t, "Some Band", sess.Songs[0].Artist)
	assert.Equal(t, 10.0, sess.Start().Seconds())

	err = static.WriteSessionTemplate(dest)
	assert.Error(t, err)

	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}

	want, _ := static.SessionTemplate()
	assert.Equal(t, want, b)
}
