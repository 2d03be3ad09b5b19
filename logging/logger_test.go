package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/portalkit/gridview/logging"
)

func TestLoggerLevels(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	log := logging.New(&buf, logging.LevelInfo)

	log.Debugf("hidden %d", 1)
	log.Infof("view %s created", "users")
	log.Error("boom")

	out := buf.String()
	r.NotContains(out, "hidden")
	r.Contains(out, "[info]: view users created")
	r.Contains(out, "[error]: boom")
}

func TestLoggerFile(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "nested", "gridview.log")
	log, err := logging.NewFile(path, logging.LevelDebug)
	r.NoError(err)

	log.Warnf("slow source %q", "crm")
	log.Close()
	log.Close()

	content, err := os.ReadFile(path)
	r.NoError(err)
	r.Contains(string(content), `[warn]: slow source "crm"`)
}

func TestParseLevel(t *testing.T) {
	r := require.New(t)

	r.Equal(logging.LevelDebug, logging.ParseLevel("DEBUG"))
	r.Equal(logging.LevelWarn, logging.ParseLevel("warning"))
	r.Equal(logging.LevelError, logging.ParseLevel("error"))
	r.Equal(logging.LevelInfo, logging.ParseLevel("chatty"))
}
