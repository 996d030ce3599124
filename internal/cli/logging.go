package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/watchfire-io/resmon/internal/config"
)

// newLogger configures the standard logger and wraps it in logr. When the
// settings panel owns the terminal, output goes to ~/.resmon/resmon.log.
func newLogger(toFile bool, verbosity int) (logr.Logger, io.Closer, error) {
	log.SetPrefix("[resmon] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	var closer io.Closer = io.NopCloser(nil)
	if toFile {
		path, err := config.GlobalLogFile()
		if err != nil {
			return logr.Discard(), nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return logr.Discard(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)
		closer = f
	}

	stdr.SetVerbosity(verbosity)
	return stdr.New(log.Default()), closer, nil
}
