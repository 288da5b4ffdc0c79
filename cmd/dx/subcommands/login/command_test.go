package login_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/plmio/go-3dx/cmd/dx/client/mock"
	"github.com/plmio/go-3dx/cmd/dx/config/profiles"
	"github.com/plmio/go-3dx/cmd/dx/subcommands/common"
	"github.com/plmio/go-3dx/cmd/dx/subcommands/internal/commandline"
	"github.com/plmio/go-3dx/cmd/dx/subcommands/login"
	"github.com/plmio/go-3dx/cmd/dx/subcommands/logger"
	"github.com/plmio/go-3dx/pkg/cmp"
)

func TestCommand(t *testing.T) {

	type when struct {
		flag        login.Flag
		profileUser string
		envPassword string
		stdin       string
		loginErr    error
	}
	type then struct {
		err      error
		login    []mock.LoginArgs
		password string
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			logger := logger.Null()
			ctx := context.Background()

			t.Setenv(common.EnvPassword, when.envPassword)

			client := mock.New(t)
			gotPassword := ""
			client.Impl.Login = func(ctx context.Context, username, password string, rememberMe bool) error {
				gotPassword = password
				return when.loginErr
			}

			profile := profiles.Profile{
				Tenant: "ACME",
				User:   when.profileUser,
			}

			stdout := new(strings.Builder)
			testee := login.Task()

			actualErr := testee(
				ctx, logger, profile, client,
				commandline.Mock[login.Flag]{
					Name: "dx login",
					In:   strings.NewReader(when.stdin),
					Out:  stdout,
					Err:  io.Discard,
					Flag: when.flag,
					Arg:  map[string][]string{},
				},
				[]any{},
			)

			if !errors.Is(actualErr, then.err) {
				t.Errorf("err: (actual, expected) = (%v, %v)", actualErr, then.err)
			}

			if !cmp.SliceEq(client.Calls.Login, then.login) {
				t.Errorf(
					"client.Calls.Login:\n===actual===\n%+v\n===expected===\n%+v",
					client.Calls.Login, then.login,
				)
			}
			if actualErr != nil {
				return
			}

			if gotPassword != then.password {
				t.Errorf(
					"password: (actual, expected) = (%s, %s)",
					gotPassword, then.password,
				)
			}
			if !strings.Contains(stdout.String(), "OK") {
				t.Errorf("stdout does not report success: %s", stdout.String())
			}
		}
	}

	t.Run("it logs in with the profile user and env password", theory(
		when{
			profileUser: "alice",
			envPassword: "open sesame",
		},
		then{
			login:    []mock.LoginArgs{{Username: "alice", RememberMe: false}},
			password: "open sesame",
		},
	))

	t.Run("it prefers --user over the profile user", theory(
		when{
			flag:        login.Flag{User: "bob"},
			profileUser: "alice",
			envPassword: "open sesame",
		},
		then{
			login:    []mock.LoginArgs{{Username: "bob", RememberMe: false}},
			password: "open sesame",
		},
	))

	t.Run("it reads the password from stdin with --password-stdin", theory(
		when{
			flag:        login.Flag{PasswordStdin: true, Remember: true},
			profileUser: "alice",
			stdin:       "hunter2\n",
		},
		then{
			login:    []mock.LoginArgs{{Username: "alice", RememberMe: true}},
			password: "hunter2",
		},
	))

	t.Run("it passes the login error through", theory(
		when{
			profileUser: "alice",
			envPassword: "open sesame",
			loginErr:    errExpected,
		},
		then{
			err:   errExpected,
			login: []mock.LoginArgs{{Username: "alice", RememberMe: false}},
		},
	))

}

var errExpected = errors.New("expected error")

func TestCommand_no_user(t *testing.T) {
	logger := logger.Null()
	ctx := context.Background()

	t.Setenv(common.EnvPassword, "open sesame")

	client := mock.New(t)
	testee := login.Task()

	actualErr := testee(
		ctx, logger, profiles.Profile{Tenant: "ACME"}, client,
		commandline.Mock[login.Flag]{
			Name: "dx login",
			In:   strings.NewReader(""),
			Out:  io.Discard,
			Err:  io.Discard,
			Flag: login.Flag{},
			Arg:  map[string][]string{},
		},
		[]any{},
	)

	if actualErr == nil {
		t.Error("no error, but expected one")
	}
	if len(client.Calls.Login) != 0 {
		t.Errorf("Login should not be called: %+v", client.Calls.Login)
	}
}
