package common

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// marker file naming the profile a directory tree works against.
	ProfileMarkerFile = ".dx-profile"

	// environment overrides, loaded before flag defaults.
	EnvProfile      = "DX_PROFILE"
	EnvProfileStore = "DX_PROFILE_STORE"

	// EnvPassword supplies the login password non-interactively.
	EnvPassword = "DX_PASSWORD"
)

type CommonFlags struct {
	Profile      string `flag:"profile" help:"profile name to use"`
	ProfileStore string `flag:"profile-store" help:"path to profile store file"`
}

type commonFlagDetection struct {
	home string
}

type CommonFlagDetectionOption func(*commonFlagDetection) *commonFlagDetection

func WithHome(home string) CommonFlagDetectionOption {
	return func(opt *commonFlagDetection) *commonFlagDetection {
		opt.home = home
		return opt
	}
}

// Flags detects default common flag values: the profile store under the
// user's home, and the profile name from DX_PROFILE or the nearest
// .dx-profile marker up the directory tree.
func Flags(from string, opt ...CommonFlagDetectionOption) (CommonFlags, error) {
	detparam := commonFlagDetection{
		home: "",
	}
	for _, o := range opt {
		detparam = *o(&detparam)
	}

	home := detparam.home
	if home == "" {
		_home, err := os.UserHomeDir()
		if err != nil {
			_home = ""
		}
		home = _home
	}

	if _from, err := filepath.Abs(from); err == nil {
		from = _from
	}

	store := os.Getenv(EnvProfileStore)
	if store == "" {
		store = path.Join(home, ".dx", "profile")
	}

	if profile := os.Getenv(EnvProfile); profile != "" {
		return CommonFlags{Profile: profile, ProfileStore: store}, nil
	}

	profile := from
	for searchpath := from; ; {
		candidate := path.Join(searchpath, ProfileMarkerFile)
		if s, err := os.Stat(candidate); err == nil && s.Mode().IsRegular() {
			content, err := os.ReadFile(candidate)
			if err != nil {
				return CommonFlags{}, err
			}
			if p := strings.Split(string(content), "\n"); 0 < len(p) {
				profile = strings.TrimSpace(p[0])
			}
			break
		}

		next := path.Dir(searchpath)
		if next == searchpath {
			break
		}
		searchpath = next
	}

	return CommonFlags{
		Profile:      profile,
		ProfileStore: store,
	}, nil
}
