package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

// Logger writes to STDOUT unless a log file path is configured.
func Logger(logFilePath string) *lecho.Logger {
	logger := lecho.New(
		os.Stdout,
		lecho.WithLevel(log.DEBUG),
		lecho.WithTimestamp(),
	)
	if logFilePath != "" {
		file, err := openLogFile(logFilePath)
		if err != nil {
			logger.Errorf("failed to open log file, keeping stdout: %v", err)
			return logger
		}
		logger.SetOutput(file)
	}

	return logger
}

// openLogFile creates a log file with the process start time folded into the
// name so restarts do not clobber the previous run.
func openLogFile(path string) (*os.File, error) {
	startedAt := time.Now().Format("2006-01-02T15-04-05")
	extension := filepath.Ext(path)
	if extension != "" {
		path = strings.TrimSuffix(path, extension) + fmt.Sprintf("-%s%s", startedAt, extension)
	} else {
		path = fmt.Sprintf("%s-%s", path, startedAt)
	}

	return os.Create(path)
}
