package whoami

import (
	"context"
	"encoding/json"
	"log"

	"github.com/youta-t/flarc"

	"github.com/plmio/go-3dx/cmd/dx/client"
	"github.com/plmio/go-3dx/cmd/dx/config/profiles"
	"github.com/plmio/go-3dx/cmd/dx/subcommands/common"
)

type Flag struct {
	User          string `flag:"user" help:"login user name (default: the profile's user)"`
	PasswordStdin bool   `flag:"password-stdin" help:"read the login password from stdin"`
	NoCache       bool   `flag:"no-cache" help:"re-fetch the profile instead of using the session cache"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"show the logged-in user's platform profile",
		Flag{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Log in with the active profile, fetch the user's profile from the tenant's
3DSpace person service and print it as JSON: name, email, company,
collaborative spaces and the preferred security context.
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
			flags.User, flags.PasswordStdin, false,
		); err != nil {
			return err
		}

		info, err := cl.UserInfo(ctx, !flags.NoCache)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(commandline.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(info); err != nil {
			return err
		}
		return nil
	}
}
