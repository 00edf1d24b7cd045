package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	LOG_ENABLE                = "FEDSWEEP_LOGLEVEL"
	LOG_PATH                  = "FEDSWEEP_LOGPATH"
	LOG_TIMEOUT               = "FEDSWEEP_LOG_TIMEOUT"
	LOG_FILENAME              = "fedsweep.log"
	LOG_DEFAULT_TIMEOUT       = 24
	FEDSWEEP_DEBUG_LOGGING    = 10
	FEDSWEEP_INFO_LOGGING     = 20
	FEDSWEEP_WARNING_LOGGING  = 30
	FEDSWEEP_ERROR_LOGGING    = 40
	FEDSWEEP_CRITICAL_LOGGING = 50
)

var (
	Log *logrus.Logger
)

func init() {
	logPath := os.TempDir()
	if env := os.Getenv(LOG_PATH); len(env) > 0 {
		logPath = env
	}
	timeout := LOG_DEFAULT_TIMEOUT
	if env := os.Getenv(LOG_TIMEOUT); len(env) > 0 {
		if t, err := strconv.Atoi(env); err == nil {
			timeout = t
		}
	}
	Log = logrus.New()
	Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	Log.SetOutput(os.Stderr)
	if f, err := openLogFile(filepath.Join(logPath, LOG_FILENAME), timeout); err == nil {
		Log.SetOutput(io.MultiWriter(os.Stderr, f))
	} else {
		Log.Warnf("logger cannot open file: %v", err)
	}
}

// openLogFile appends to logfile, starting over when the timestamp on its
// first line is older than timeout hours.
func openLogFile(logfile string, timeout int) (*os.File, error) {
	if f, err := os.Open(logfile); err == nil {
		scanner := bufio.NewScanner(f)
		scanner.Scan()
		f.Close()
		if tag, terr := time.Parse(time.RFC3339, scanner.Text()); terr == nil {
			if int(time.Since(tag).Hours()) > timeout {
				os.Remove(logfile)
			}
		} else {
			os.Remove(logfile)
		}
	}
	f, err := os.OpenFile(logfile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("LogWriter: OpenFile: %w", err)
	}
	if stat, serr := f.Stat(); serr == nil {
		if stat.Size() == 0 {
			f.WriteString(time.Now().Format(time.RFC3339) + "\n")
			f.Sync()
		}
	}
	return f, nil
}

func LogLevel() int {
	if env, err := strconv.Atoi(os.Getenv(LOG_ENABLE)); err == nil {
		return env
	} else {
		return FEDSWEEP_INFO_LOGGING
	}
}

func getLogLevel(level int) string {
	switch level := level; level {
	case FEDSWEEP_DEBUG_LOGGING:
		return "DEBUG"
	case FEDSWEEP_INFO_LOGGING:
		return "INFO"
	case FEDSWEEP_WARNING_LOGGING:
		return "WARNING"
	case FEDSWEEP_ERROR_LOGGING:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

func entry(level int) *logrus.Entry {
	return Log.WithField("severity", getLogLevel(level))
}

func logObj(level int, name string, v interface{}) {
	if LogLevel() <= level {
		data, _ := json.MarshalIndent(v, "", " ")
		logPrintf(level, "%s:\n%s", name, data)
	}
}

func logPrintf(level int, format string, a ...interface{}) {
	e := entry(level)
	switch level {
	case FEDSWEEP_DEBUG_LOGGING:
		e.Debugf(format, a...)
	case FEDSWEEP_INFO_LOGGING:
		e.Infof(format, a...)
	case FEDSWEEP_WARNING_LOGGING:
		e.Warnf(format, a...)
	default:
		e.Errorf(format, a...)
	}
}

func DebugObj(name string, v interface{}) {
	logObj(FEDSWEEP_DEBUG_LOGGING, name, v)
}

func DebugPrintf(format string, a ...interface{}) {
	if LogLevel() <= FEDSWEEP_DEBUG_LOGGING {
		logPrintf(FEDSWEEP_DEBUG_LOGGING, format, a...)
	}
}

func InfoObj(name string, v interface{}) {
	logObj(FEDSWEEP_INFO_LOGGING, name, v)
}

func InfoPrintf(format string, a ...interface{}) {
	if LogLevel() <= FEDSWEEP_INFO_LOGGING {
		logPrintf(FEDSWEEP_INFO_LOGGING, format, a...)
	}
}

func WarningObj(name string, v interface{}) {
	logObj(FEDSWEEP_WARNING_LOGGING, name, v)
}

func WarningPrintf(format string, a ...interface{}) {
	if LogLevel() <= FEDSWEEP_WARNING_LOGGING {
		logPrintf(FEDSWEEP_WARNING_LOGGING, format, a...)
	}
}

func ErrorObj(name string, v interface{}) {
	logObj(FEDSWEEP_ERROR_LOGGING, name, v)
}

func ErrorPrintf(format string, a ...interface{}) {
	if LogLevel() <= FEDSWEEP_ERROR_LOGGING {
		logPrintf(FEDSWEEP_ERROR_LOGGING, format, a...)
	}
}

func CriticalObj(name string, v interface{}) {
	logObj(FEDSWEEP_CRITICAL_LOGGING, name, v)
}

func CriticalPrintf(format string, a ...interface{}) {
	if LogLevel() <= FEDSWEEP_CRITICAL_LOGGING {
		logPrintf(FEDSWEEP_CRITICAL_LOGGING, format, a...)
	}
}

// Logs at CRITICAL whatever FEDSWEEP_LOGLEVEL says. For the error that ends
// the process, which must always reach stderr.
func FailurePrintf(format string, a ...interface{}) {
	logPrintf(FEDSWEEP_CRITICAL_LOGGING, format, a...)
}
