package common_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plmio/go-3dx/cmd/dx/subcommands/common"
	"github.com/plmio/go-3dx/pkg/utils/try"
)

func TestFlags(t *testing.T) {
	t.Run("it detects the profile from the marker in the given directory", func(t *testing.T) {
		t.Setenv(common.EnvProfile, "")
		t.Setenv(common.EnvProfileStore, "")

		home := t.TempDir()
		current := t.TempDir()
		if err := os.WriteFile(
			filepath.Join(current, common.ProfileMarkerFile),
			[]byte("test-tenant\n"), os.FileMode(0600),
		); err != nil {
			t.Fatal(err)
		}

		cf := try.To(common.Flags(current, common.WithHome(home))).OrFatal(t)

		if cf.Profile != "test-tenant" {
			t.Errorf("wrong profile: %s", cf.Profile)
		}
		expectedStore := filepath.Join(home, ".dx", "profile")
		if try.To(filepath.Abs(cf.ProfileStore)).OrFatal(t) != try.To(filepath.Abs(expectedStore)).OrFatal(t) {
			t.Errorf("wrong profile store: %s", cf.ProfileStore)
		}
	})

	t.Run("it detects the profile from the marker in an ancestor directory", func(t *testing.T) {
		t.Setenv(common.EnvProfile, "")
		t.Setenv(common.EnvProfileStore, "")

		home := t.TempDir()
		root := t.TempDir()
		if err := os.WriteFile(
			filepath.Join(root, common.ProfileMarkerFile),
			[]byte("test-tenant\n"), os.FileMode(0600),
		); err != nil {
			t.Fatal(err)
		}
		current := filepath.Join(root, "children", "folder")
		if err := os.MkdirAll(current, os.FileMode(0755)); err != nil {
			t.Fatal(err)
		}

		cf := try.To(common.Flags(current, common.WithHome(home))).OrFatal(t)

		if cf.Profile != "test-tenant" {
			t.Errorf("wrong profile: %s", cf.Profile)
		}
	})

	t.Run("environment variables take precedence", func(t *testing.T) {
		t.Setenv(common.EnvProfile, "from-env")
		t.Setenv(common.EnvProfileStore, "/tmp/store-from-env")

		home := t.TempDir()
		current := t.TempDir()
		if err := os.WriteFile(
			filepath.Join(current, common.ProfileMarkerFile),
			[]byte("from-marker\n"), os.FileMode(0600),
		); err != nil {
			t.Fatal(err)
		}

		cf := try.To(common.Flags(current, common.WithHome(home))).OrFatal(t)

		if cf.Profile != "from-env" {
			t.Errorf("wrong profile: %s", cf.Profile)
		}
		if cf.ProfileStore != "/tmp/store-from-env" {
			t.Errorf("wrong profile store: %s", cf.ProfileStore)
		}
	})
}
