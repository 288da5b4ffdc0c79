// Package commandline provides a flarc.Commandline stand-in for command
// task tests.
package commandline

import (
	"io"

	"github.com/youta-t/flarc"
)

type Mock[T any] struct {
	Name string

	In  io.Reader
	Out io.Writer
	Err io.Writer

	Flag T
	Arg  map[string][]string
}

var _ flarc.Commandline[struct{}] = Mock[struct{}]{}

func (m Mock[T]) Fullname() string {
	return m.Name
}

func (m Mock[T]) Stdin() io.Reader {
	return m.In
}

func (m Mock[T]) Stdout() io.Writer {
	return m.Out
}

func (m Mock[T]) Stderr() io.Writer {
	return m.Err
}

func (m Mock[T]) Flags() T {
	return m.Flag
}

func (m Mock[T]) Args() map[string][]string {
	return m.Arg
}
