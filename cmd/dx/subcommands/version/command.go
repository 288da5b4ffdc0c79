package version

import (
	"context"

	"github.com/youta-t/flarc"

	"github.com/plmio/go-3dx/pkg/buildtime"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show version of this command.",
		struct{}{},
		flarc.Args{},
		func(ctx context.Context, c flarc.Commandline[struct{}], a []any) error {
			c.Stdout().Write([]byte(buildtime.VersionString()))
			return nil
		},
	)
}
