package scriptsnoop

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/scriptsnoop/scriptsnoop/internal/config"
)

// normalizeTarget expands a leading ~ and cleans the path.
func normalizeTarget(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		p = "."
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}

// selfPath returns the running executable so a scan never reports on the
// scanner itself.
func selfPath() string {
	p, err := os.Executable()
	if err != nil {
		return ""
	}
	return p
}

// loadConfigs returns the config pair for root. An explicit --config file
// replaces the local config.
func loadConfigs(root string) (config.FileConfig, config.FileConfig, error) {
	local, global, err := config.Load(root)
	if err != nil {
		return local, global, err
	}
	if flagConfig != "" {
		local, err = config.LoadFile(flagConfig)
		if err != nil {
			return local, global, err
		}
	}
	return local, global, nil
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickList(cli string, local, global []string) string {
	if cli != "" {
		return cli
	}
	if len(local) > 0 {
		return strings.Join(local, ",")
	}
	if len(global) > 0 {
		return strings.Join(global, ",")
	}
	return ""
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
