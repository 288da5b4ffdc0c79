package login

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
	Remember      bool   `flag:"remember" help:"ask the identity provider to remember this session"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"log in to the platform with the active profile",
		Flag{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Perform the passport login for the active profile's tenant and report
whether the platform accepted the credentials.

The password comes from the DX_PASSWORD environment variable, or from
stdin when --password-stdin is passed:

    echo "$PASSWORD" | {{ .Command }} --password-stdin
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

		if err := common.Authenticate(
			ctx, cl, profile, commandline.Stdin(),
			flags.User, flags.PasswordStdin, flags.Remember,
		); err != nil {
			return err
		}

		logger.Printf("logged in to tenant %s", cl.Tenant())
		fmt.Fprintf(commandline.Stdout(), "OK\n")
		return nil
	}
}
