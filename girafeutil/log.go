/*
Copyright © 2024 the GIRAFE authors.
This file is part of GIRAFE.

GIRAFE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GIRAFE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GIRAFE.  If not, see <http://www.gnu.org/licenses/>.*/

package girafeutil

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const logBanner = `╔════════════════════════════════════════════════╗
║            WELCOME                             ║
║     /)/)           TO                          ║
║    ( ..\             THE                       ║
║    /'-._)               GIRAFE                 ║
║   /#/                      FLEXPART            ║
║  /#/  fsc                      SIMULATION      ║
╚════════════════════════════════════════════════╝
`

// newLogger returns a logger that writes to stdout and to a new log
// file at logFile, which starts with the GIRAFE banner. The returned
// function closes the log file.
func newLogger(stdout io.Writer, logFile string, verbose bool) (*logrus.Logger, func() error, error) {
	f, err := os.Create(logFile)
	if err != nil {
		return nil, nil, fmt.Errorf("girafeutil: problem creating log file: %v", err)
	}
	if _, err := io.WriteString(f, logBanner); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("girafeutil: problem writing log file: %v", err)
	}
	log := logrus.New()
	log.Out = io.MultiWriter(stdout, f)
	log.Formatter = &logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	}
	log.Level = logrus.InfoLevel
	if verbose {
		log.Level = logrus.DebugLevel
	}
	return log, f.Close, nil
}
