package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/youta-t/flarc"

	"github.com/plmio/go-3dx/cmd/dx/client"
	"github.com/plmio/go-3dx/cmd/dx/config/profiles"
	"github.com/plmio/go-3dx/pkg/rest"
	"github.com/plmio/go-3dx/pkg/session"
)

type TaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task TaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		return task(
			ctx,
			logger,
			commonFlag,
			cl,
			newpos,
		)
	}
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	profile profiles.Profile,
	cl client.Client,
	commandline flarc.Commandline[T],
	params []any,
) error

// NewTask loads the active profile and hands the command a platform
// session built from it.
func NewTask[T any](task Task[T]) flarc.Task[T] {
	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		store, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) || errors.Is(err, profiles.ErrProfileStoreNotFound) {
				return fmt.Errorf(
					"%w: profile store (%s) is not found. Please try `dx init` first",
					err, commonFlag.ProfileStore,
				)
			}
			return fmt.Errorf(
				"%w: failed to load profile store (%s)",
				err, commonFlag.ProfileStore,
			)
		}
		prof, ok := store[commonFlag.Profile]
		if !ok {
			return fmt.Errorf(
				"profile '%s' not found in the profile store (%s)",
				commonFlag.Profile, commonFlag.ProfileStore,
			)
		}

		sess, err := NewSession(prof)
		if err != nil {
			return fmt.Errorf(
				"%w: failed to create platform session. Your profile (%s in %s) can be broken",
				err, commonFlag.Profile, commonFlag.ProfileStore,
			)
		}

		return task(ctx, logger, *prof, sess, cl, params)
	})
}

// NewSession builds a platform session from a profile.
func NewSession(prof *profiles.Profile) (*session.Session, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}

	options := []session.Option{}
	if prof.Passport != "" {
		options = append(options, session.WithPassportURL(prof.Passport))
	}
	if prof.Compass != "" {
		options = append(options, session.WithCompassURL(prof.Compass))
	}
	if prof.Cert.CA != "" {
		options = append(options, session.WithRestOptions(rest.WithCACert(prof.Cert.CA)))
	}

	return session.New(prof.Tenant, options...)
}

// Password returns the login password from the DX_PASSWORD environment
// variable. Commands reading from stdin bypass this.
func Password() (string, error) {
	if pw := os.Getenv(EnvPassword); pw != "" {
		return pw, nil
	}
	return "", fmt.Errorf("no password: set %s or use --password-stdin", EnvPassword)
}
