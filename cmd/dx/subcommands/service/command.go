package service

import (
	"context"
	"fmt"
	"log"

	"github.com/youta-t/flarc"

	"github.com/plmio/go-3dx/cmd/dx/client"
	"github.com/plmio/go-3dx/cmd/dx/config/profiles"
	"github.com/plmio/go-3dx/cmd/dx/subcommands/common"
)

type Flag struct {
	User          string `flag:"user" help:"login user name (default: the profile's user)"`
	PasswordStdin bool   `flag:"password-stdin" help:"read the login password from stdin"`
	NoCache       bool   `flag:"no-cache" help:"re-fetch the service registry instead of using the session cache"`
}

const ARG_SERVICE_NAME = "SERVICE_NAME"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"resolve the URL of a named platform service",
		Flag{},
		flarc.Args{
			{
				Name: ARG_SERVICE_NAME, Required: true,
				Help: `logical service name in the registry, like "3DSpace" or "3DSwym".`,
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Log in with the active profile and look up the named service in the
tenant's service registry. The resolved URL is printed to stdout.

    {{ .Command }} 3DSpace
`),
	)
}

func Task() common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		profile profiles.Profile,
		cl client.Client,
		commandline flarc.Commandline[Flag],
		params []any,
	) error {
		flags := commandline.Flags()
		serviceName := commandline.Args()[ARG_SERVICE_NAME][0]

		if err := common.Authenticate(
			ctx, cl, profile, commandline.Stdin(),
			flags.User, flags.PasswordStdin, false,
		); err != nil {
			return err
		}

		url, err := cl.ServiceURL(ctx, serviceName, !flags.NoCache)
		if err != nil {
			return err
		}

		fmt.Fprintln(commandline.Stdout(), url)
		return nil
	}
}
