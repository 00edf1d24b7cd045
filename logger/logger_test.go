package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelGating(t *testing.T) {
	hook := test.NewLocal(Log)
	defer hook.Reset()

	t.Setenv(LOG_ENABLE, "30")
	DebugPrintf("debug %d", 1)
	InfoPrintf("info %d", 2)
	WarningPrintf("warning %d", 3)
	ErrorPrintf("error %d", 4)
	CriticalPrintf("critical %d", 5)

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "warning 3", entries[0].Message)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, "ERROR", entries[1].Data["severity"])
	assert.Equal(t, "CRITICAL", entries[2].Data["severity"])
	assert.Equal(t, logrus.ErrorLevel, entries[2].Level)
}

func TestDefaultLevelIsInfo(t *testing.T) {
	hook := test.NewLocal(Log)
	defer hook.Reset()

	t.Setenv(LOG_ENABLE, "")
	assert.Equal(t, FEDSWEEP_INFO_LOGGING, LogLevel())
	DebugPrintf("hidden")
	InfoObj("job", map[string]int{"f": 400})

	require.Len(t, hook.AllEntries(), 1)
	assert.Contains(t, hook.LastEntry().Message, `"f": 400`)
}

func TestOpenLogFileWritesHeader(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), LOG_FILENAME)

	f, err := openLogFile(logfile, LOG_DEFAULT_TIMEOUT)
	require.NoError(t, err)
	f.Close()

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	_, perr := time.Parse(time.RFC3339, string(data[:len(data)-1]))
	assert.NoError(t, perr)
}

func TestOpenLogFileResetsStaleLog(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), LOG_FILENAME)
	stale := time.Now().Add(-48*time.Hour).Format(time.RFC3339) + "\nold line\n"
	require.NoError(t, os.WriteFile(logfile, []byte(stale), 0644))

	f, err := openLogFile(logfile, 24)
	require.NoError(t, err)
	f.Close()

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old line")
}

func TestOpenLogFileKeepsFreshLog(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), LOG_FILENAME)
	fresh := time.Now().Format(time.RFC3339) + "\nrecent line\n"
	require.NoError(t, os.WriteFile(logfile, []byte(fresh), 0644))

	f, err := openLogFile(logfile, 24)
	require.NoError(t, err)
	f.Close()

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "recent line")
}

func TestFailurePrintfIgnoresLevel(t *testing.T) {
	hook := test.NewLocal(Log)
	defer hook.Reset()

	t.Setenv(LOG_ENABLE, "60")
	CriticalPrintf("gated")
	FailurePrintf("submit: %s", "rejected")

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "submit: rejected", hook.LastEntry().Message)
	assert.Equal(t, "CRITICAL", hook.LastEntry().Data["severity"])
}
