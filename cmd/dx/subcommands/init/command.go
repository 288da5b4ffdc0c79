package init

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"

	prof "github.com/plmio/go-3dx/cmd/dx/config/profiles"
	"github.com/plmio/go-3dx/cmd/dx/subcommands/common"
)

const ARG_PROFILE_FILE = "PROFILE_FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"register a platform profile and mark this directory",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_PROFILE_FILE, Required: true,
				Help: "filepath to a dx profile file, which you received from your admin.",
			},
		},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Register a new profile into your profile store.

A "dx profile" is a yaml file naming a platform tenant and how to reach it
(tenant id, login user, identity provider and directory service roots).
"{{ .Command }}" registers the given profile file into your profile store
and writes a marker file so commands run in this directory tree use it.

The name of the profile is given by "--profile" ( default: current filepath ).
`),
	)
}

func Task() common.TaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		profFile := cl.Args()[ARG_PROFILE_FILE][0]

		store, err := prof.LoadProfileStore(commonFlag.ProfileStore)
		if errors.Is(err, prof.ErrProfileStoreNotFound) {
			// ok.
			store = prof.ProfileStore{}
		} else if err != nil {
			logger.Printf(
				"failed to load profile store (%s) : %s", commonFlag.ProfileStore, err,
			)
			return err
		}

		newProf := new(prof.Profile)
		{
			content, err := os.ReadFile(profFile)
			if err != nil {
				logger.Printf("failed to read profile file (%s) : %s", profFile, err)
				return err
			}

			if err := yaml.Unmarshal(content, newProf); err != nil {
				logger.Printf("failed to parse profile file (%s) : %s", profFile, err)
				return err
			}
		}
		if err := newProf.Verify(); err != nil {
			logger.Printf("%s: %s", profFile, err)
			return err
		}

		profName := commonFlag.Profile
		store[profName] = newProf
		if err := store.Save(commonFlag.ProfileStore); err != nil {
			logger.Printf(
				"failed to save profile store (%s) : %s",
				commonFlag.ProfileStore, err,
			)
			return err
		}
		logger.Printf(
			"profile %s is saved to %s", profName, commonFlag.ProfileStore,
		)

		f, err := os.OpenFile(
			common.ProfileMarkerFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, os.FileMode(0600),
		)
		if err != nil {
			logger.Printf("failed to open %s : %s", common.ProfileMarkerFile, err)
			return err
		}
		defer f.Close()
		f.Write([]byte(profName))

		return nil
	}
}
