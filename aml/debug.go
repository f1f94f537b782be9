package aml

import (
	"io"
	"log"
	"os"
)

// debugLog is silent unless ROS_DEBUG is set in the environment, mirroring
// the teacher's ARM_EMULATOR_DEBUG-gated logger.
var debugLog = newDebugLogger()

func newDebugLogger() *log.Logger {
	if os.Getenv("ROS_DEBUG") == "" {
		return log.New(io.Discard, "aml: ", log.Lshortfile)
	}
	return log.New(os.Stderr, "aml: ", log.Lshortfile)
}
