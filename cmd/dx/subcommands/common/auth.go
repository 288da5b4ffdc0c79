package common

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/plmio/go-3dx/cmd/dx/client"
	"github.com/plmio/go-3dx/cmd/dx/config/profiles"
)

// Authenticate logs the session in, resolving the user name from the flag
// or the profile and the password from stdin or DX_PASSWORD.
func Authenticate(
	ctx context.Context,
	cl client.Client,
	profile profiles.Profile,
	stdin io.Reader,
	user string,
	passwordStdin bool,
	remember bool,
) error {
	if user == "" {
		user = profile.User
	}
	if user == "" {
		return fmt.Errorf("no user name: pass --user or set one in the profile")
	}

	var password string
	if passwordStdin {
		buf, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("cannot read password from stdin: %w", err)
		}
		password = strings.TrimRight(string(buf), "\r\n")
	} else {
		pw, err := Password()
		if err != nil {
			return err
		}
		password = pw
	}

	return cl.Login(ctx, user, password, remember)
}
