package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/nikhilbadyal/tracker/safego"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileMaxSizeMB = 100

//NewRollingWriter returns a file writer rotated every Config.RotationMin minutes
func NewRollingWriter(config Config) (io.WriteCloser, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("Error while creating %s logger: %v", config.FileName, err)
	}

	fileNamePath := filepath.Join(config.FileDir, fmt.Sprintf("%s.log", config.FileName))
	lWriter := &lumberjack.Logger{
		Filename: fileNamePath,
		MaxSize:  logFileMaxSizeMB,
	}
	if config.MaxBackups > 0 {
		lWriter.MaxBackups = config.MaxBackups
	}

	rotation := time.Duration(config.RotationMin) * time.Minute
	ticker := time.NewTicker(rotation)
	safego.RunWithRestart(func() {
		for {
			<-ticker.C
			if err := lWriter.Rotate(); err != nil {
				Errorf("Error rotating log file [%s]: %v", fileNamePath, err)
			}
		}
	})

	return lWriter, nil
}
