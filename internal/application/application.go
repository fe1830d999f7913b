package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "odoocli"

	// EnvPrefix is the prefix for environment overrides (ODOOCLI_LOG_LEVEL, ...)
	EnvPrefix = "ODOOCLI"

	// EnvAppDir overrides the application directory (mainly for tests and containers)
	EnvAppDir = "ODOOCLI_HOME"

	// EnvAPIKey supplies the API key to the login command
	EnvAPIKey = "ODOOCLI_API_KEY"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the odoocli data directory path, creating it
// on first use.
// Linux: ~/.config/odoocli (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\odoocli (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

func lazyLoad() {
	if dir := os.Getenv(EnvAppDir); dir != "" {
		appDir = dir
	} else {
		var (
			baseDir string
			err     error
		)

		switch runtime.GOOS {
		case "windows":
			baseDir, err = os.UserCacheDir()
		default:
			baseDir, err = os.UserConfigDir()
		}

		if err != nil {
			errDir = fmt.Errorf("failed to get config directory: %w", err)

			return
		}

		appDir = filepath.Join(baseDir, AppName)
	}

	if err := os.MkdirAll(appDir, 0o700); err != nil {
		errDir = fmt.Errorf("failed to create application directory: %w", err)
	}
}
