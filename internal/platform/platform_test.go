package platform

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	if dir := ConfigDir(); dir != filepath.Join(home, ".fauxchat") {
		t.Errorf("ConfigDir() = %s, want %s", dir, filepath.Join(home, ".fauxchat"))
	}
}

func TestDataDirLayouts(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME does not drive os.UserHomeDir on Windows")
	}

	home := t.TempDir()
	xdg := filepath.Join(home, "xdg")
	appData := filepath.Join(home, "AppData", "Roaming")

	tests := []struct {
		name    string
		goos    string
		xdgHome string
		want    string
	}{
		{"linux default", "linux", "", filepath.Join(home, ".local", "share", "fauxchat")},
		{"linux xdg", "linux", xdg, filepath.Join(xdg, "fauxchat")},
		{"freebsd follows xdg", "freebsd", xdg, filepath.Join(xdg, "fauxchat")},
		{"darwin", "darwin", xdg, filepath.Join(home, "Library", "Application Support", "com.jewelexx.FauxChat")},
		{"windows", "windows", "", filepath.Join(appData, "jewelexx", "FauxChat", "data")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", home)
			t.Setenv("XDG_DATA_HOME", tt.xdgHome)
			t.Setenv("APPDATA", appData)

			dir, err := dataDir(tt.goos)
			if err != nil {
				t.Fatalf("dataDir(%q) error = %v", tt.goos, err)
			}
			if dir != tt.want {
				t.Errorf("dataDir(%q) = %s, want %s", tt.goos, dir, tt.want)
			}
		})
	}
}

func TestDataDirMatchesOS(t *testing.T) {
	want, err := dataDir(runtime.GOOS)
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir() error = %v", err)
	}
	if got != want {
		t.Errorf("DataDir() = %s, want %s", got, want)
	}
}
