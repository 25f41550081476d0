package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// OS returns the current operating system
func OS() string {
	return runtime.GOOS
}

// ConfigDir returns ~/.fauxchat, which holds config.yaml and logs/.
// Falls back to a relative .fauxchat when the home directory is unknown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fauxchat"
	}
	return filepath.Join(home, ".fauxchat")
}

// DataDir returns the per-user application data directory the FauxChat
// desktop app reads credentials.toml from:
//
//	linux:   $XDG_DATA_HOME/fauxchat or ~/.local/share/fauxchat
//	darwin:  ~/Library/Application Support/com.jewelexx.FauxChat
//	windows: %APPDATA%\jewelexx\FauxChat\data
func DataDir() (string, error) {
	return dataDir(OS())
}

func dataDir(goos string) (string, error) {
	switch goos {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return "", err
			}
			appData = dir
		}
		return filepath.Join(appData, "jewelexx", "FauxChat", "data"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "com.jewelexx.FauxChat"), nil
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "fauxchat"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "fauxchat"), nil
	}
}
