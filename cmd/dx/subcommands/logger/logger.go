// Package logger builds the stderr loggers shared by dx subcommands.
package logger

import (
	"io"
	"log"
)

// Null discards everything. Command tests use it.
func Null() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func Default() *log.Logger {
	return log.Default()
}
