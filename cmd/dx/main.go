package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/joho/godotenv"
	"github.com/youta-t/flarc"

	"github.com/plmio/go-3dx/cmd/dx/subcommands/common"
	subinit "github.com/plmio/go-3dx/cmd/dx/subcommands/init"
	"github.com/plmio/go-3dx/cmd/dx/subcommands/logger"
	sublogin "github.com/plmio/go-3dx/cmd/dx/subcommands/login"
	subservice "github.com/plmio/go-3dx/cmd/dx/subcommands/service"
	subver "github.com/plmio/go-3dx/cmd/dx/subcommands/version"
	subwhoami "github.com/plmio/go-3dx/cmd/dx/subcommands/whoami"
	"github.com/plmio/go-3dx/pkg/utils/try"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	// .env may carry DX_PASSWORD and friends. Missing file is fine.
	godotenv.Load()

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	login := try.To(sublogin.New()).OrFatal(logger)
	whoami := try.To(subwhoami.New()).OrFatal(logger)
	service := try.To(subservice.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	dx := try.To(
		flarc.NewCommandGroup(
			"3DEXPERIENCE platform commandline interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("login", login),
			flarc.WithSubcommand("whoami", whoami),
			flarc.WithSubcommand("service", service),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, dx, flarc.WithHelp(true)))
}
