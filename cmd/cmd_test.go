// cmd/cmd_test.go
package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/fauxchat/fauxchat-cli/internal/config"
	"github.com/fauxchat/fauxchat-cli/internal/credentials"
	"github.com/fauxchat/fauxchat-cli/internal/usernames"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCLI executes the root command in a fresh working directory with an
// isolated HOME and returns stdout and the command error.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)
	resetFlags(rootCmd)
	cfg = config.Default()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag of cmd and its children to its default
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func TestCmdirWithoutArgumentPrintsUsage(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "cmdir")
	if !errors.Is(err, errUsage) {
		t.Fatalf("error = %v, want errUsage", err)
	}
	if out != "Usage: fauxchat cmdir <file>\n" {
		t.Errorf("output = %q", out)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("working directory has %d entries, want 0", len(entries))
	}
}

func TestCmdirConvertsFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "stream.cmdir")
	content := "a\nend_pause(10)\nb\nend_pause(25)\nend_pause(40)\n"
	if err := os.WriteFile(input, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, dir, "cmdir", input)
	if err != nil {
		t.Fatalf("cmdir error = %v", err)
	}
	if !strings.Contains(out, "stream.commands") {
		t.Errorf("output %q does not name the written file", out)
	}

	got, err := os.ReadFile(filepath.Join(dir, "stream.commands"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "a\nb\nsleep(15)\nsleep(15)\n"; string(got) != want {
		t.Errorf("converted = %q, want %q", got, want)
	}
	if _, err := os.Stat(input); !os.IsNotExist(err) {
		t.Errorf("input still exists, stat error = %v", err)
	}
}

func setCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv(credentials.EnvClientID, "client")
	t.Setenv(credentials.EnvClientSecret, "secret-value")
	t.Setenv(credentials.EnvUserID, "1234")
	t.Setenv(credentials.EnvAuthToken, "auth-token")
	t.Setenv(credentials.EnvRefreshToken, "refresh-token")
}

func TestCredentialsWrite(t *testing.T) {
	dir := t.TempDir()
	setCredentialEnv(t)

	if _, err := runCLI(t, dir, "credentials", "write"); err != nil {
		t.Fatalf("credentials write error = %v", err)
	}

	creds, err := credentials.Load(filepath.Join(dir, credentials.DefaultFileName))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if creds.ClientSecret != "secret-value" || creds.RefreshToken != "refresh-token" {
		t.Errorf("unexpected credentials %+v", creds)
	}

	out, err := runCLI(t, dir, "credentials", "show")
	if err != nil {
		t.Fatalf("credentials show error = %v", err)
	}
	if strings.Contains(out, "secret-value") {
		t.Errorf("show printed the secret in clear: %q", out)
	}
	if !strings.Contains(out, "client") {
		t.Errorf("show output %q is missing the client id", out)
	}
}

func TestCredentialsShowFallsBackToDataDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_DATA_HOME only drives the data directory on Linux")
	}

	dir := t.TempDir()
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	setCredentialEnv(t)

	creds, err := credentials.FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	appCopy := filepath.Join(dataHome, "fauxchat", credentials.DefaultFileName)
	if err := os.MkdirAll(filepath.Dir(appCopy), 0755); err != nil {
		t.Fatal(err)
	}
	if err := credentials.WriteNew(appCopy, creds); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, dir, "credentials", "show")
	if err != nil {
		t.Fatalf("credentials show error = %v", err)
	}
	if !strings.Contains(out, "using the FauxChat app data copy") {
		t.Errorf("show output %q is missing the fallback warning", out)
	}
	if !strings.Contains(out, appCopy) {
		t.Errorf("show output %q does not name %s", out, appCopy)
	}
}

func TestCredentialsWriteMissingVariable(t *testing.T) {
	dir := t.TempDir()
	setCredentialEnv(t)
	os.Unsetenv(credentials.EnvAuthToken)

	_, err := runCLI(t, dir, "credentials", "write", "--out", "creds.toml")
	if !errors.Is(err, credentials.ErrMissingEnv) {
		t.Fatalf("error = %v, want ErrMissingEnv", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "creds.toml")); !os.IsNotExist(err) {
		t.Errorf("credentials file was created, stat error = %v", err)
	}
}

func TestCommandsCheck(t *testing.T) {
	dir := t.TempDir()
	script := "send(\"hello\", 2, 100)\n\nsleep(25)\n"
	if err := os.WriteFile(filepath.Join(dir, "demo.commands"), []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, dir, "commands", "check", "--list", "demo.commands")
	if err != nil {
		t.Fatalf("commands check error = %v", err)
	}
	for _, want := range []string{`send("hello", 2, 100)`, "sleep(25)", "225ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestCommandsCheckInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.commands"), []byte("jump(1)\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, dir, "commands", "check", "bad.commands"); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}

func TestUsernamesPrintsFirstBatch(t *testing.T) {
	dir := t.TempDir()
	vocab := "[PAD]\n[UNK]\n[CLS]\n[SEP]\nNight\n##owl\nPixel\n##Pal\nZ\n"
	if err := os.WriteFile(filepath.Join(dir, "vocab.txt"), []byte(vocab), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "usernames.txt"), []byte("Nightowl\nPixelPal\nZ\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, dir, "usernames", "--vocab", "vocab.txt", "-o", "json")
	if err != nil {
		t.Fatalf("usernames error = %v", err)
	}

	var batch usernames.Batch
	if err := json.Unmarshal([]byte(out), &batch); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if batch.Len() != 3 {
		t.Fatalf("batch has %d records, want 3", batch.Len())
	}
	want := [][]int32{{2, 4, 5, 3}, {2, 6, 7, 3}, {2, 8, 3, 0}}
	if !reflect.DeepEqual(batch.InputIDs, want) {
		t.Errorf("input ids = %v, want %v", batch.InputIDs, want)
	}
}

func TestUsernamesEmptyFileWithBundledVocab(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "usernames.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, dir, "usernames")
	if err != nil {
		t.Fatalf("usernames error = %v", err)
	}

	var batch usernames.Batch
	if err := json.Unmarshal([]byte(out), &batch); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if batch.Len() != 0 || batch.Names == nil {
		t.Errorf("batch = %+v, want an empty batch", batch)
	}
}

func TestUsernamesBundledVocab(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "usernames.txt"), []byte("Nightowl\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, dir, "usernames", "-o", "yaml")
	if err != nil {
		t.Fatalf("usernames error = %v", err)
	}
	for _, want := range []string{"- Nightowl", "- 3259", "##ow"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestUsernamesRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "usernames", "-o", "xml")
	if !errors.Is(err, config.ErrInvalidOutput) {
		t.Fatalf("error = %v, want ErrInvalidOutput", err)
	}
}

func TestPoolRandomise(t *testing.T) {
	dir := t.TempDir()
	pool := `{"users": [{"name": "a"}, {"name": "b"}]}`
	if err := os.WriteFile(filepath.Join(dir, "pool.json"), []byte(pool), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, dir, "pool", "randomise", "--seed", "7")
	if err != nil {
		t.Fatalf("pool randomise error = %v", err)
	}
	if !strings.Contains(out, "Randomised 2 users") {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "pool.json"))
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Users []map[string]any `json:"users"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, u := range decoded.Users {
		for _, key := range []string{"name", "is_mod", "is_vip", "is_sub"} {
			if _, ok := u[key]; !ok {
				t.Errorf("user %v missing %q", u, key)
			}
		}
	}
}

func TestVersion(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if want := "fauxchat " + Version + " (" + runtime.GOOS + "/" + runtime.GOARCH; !strings.HasPrefix(out, want) {
		t.Errorf("version output = %q, want prefix %q", out, want)
	}

	out, err = runCLI(t, dir, "version", "--short")
	if err != nil {
		t.Fatalf("version --short error = %v", err)
	}
	if out != Version+"\n" {
		t.Errorf("version --short output = %q, want %q", out, Version+"\n")
	}
}

func TestCompletionCandidates(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "output formats",
			args: []string{"__complete", "usernames", "--output", ""},
			want: []string{"json\n", "yaml\n", "table\n", ":4\n"},
		},
		{
			name: "cmdir logs",
			args: []string{"__complete", "cmdir", ""},
			want: []string{"cmdir\n", ":8\n"},
		},
		{
			name: "vocab word lists",
			args: []string{"__complete", "usernames", "--vocab", ""},
			want: []string{"txt\n", ":8\n"},
		},
		{
			name: "single pool file",
			args: []string{"__complete", "pool", "randomise", "pool.json", ""},
			want: []string{":4\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, t.TempDir(), tt.args...)
			if err != nil {
				t.Fatalf("completion error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("completion output %q missing %q", out, want)
				}
			}
		})
	}
}
