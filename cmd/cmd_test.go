package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"mybundle/pkg/bundle"
	"mybundle/pkg/rsp"
)

// workspace creates a project directory, makes it the working directory and
// isolates HOME so no user config is picked up.
func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return runApp(t, &app{fs: osfs.New("/")}, stdin, args...)
}

func runApp(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestBundleCommand_Scenario(t *testing.T) {
	dir := workspace(t, map[string]string{
		"a.py":  "x = 1\n\n",
		"b.cpp": "int main() {}\n",
	})

	out, err := run(t, "", "bundle", "-o", "out.txt", "-l", "pyton,c++", "-s", "ABC")
	require.NoError(t, err)
	assert.Equal(t, "bundle created: out.txt\n", out)

	want := "-----------------a.py---------------\nx = 1\n\n" +
		"-----------------b.cpp---------------\nint main() {}\n"
	assert.Equal(t, want, readFile(t, filepath.Join(dir, "out.txt")))
}

func TestBundleCommand_RemoveEmptyLines(t *testing.T) {
	dir := workspace(t, map[string]string{
		"a.py":  "x = 1\n\n",
		"b.cpp": "int main() {}\n",
	})

	_, err := run(t, "", "bundle", "-o", "out.txt", "-l", "pyton,c++", "-r")
	require.NoError(t, err)

	assert.Equal(t, "x = 1\n", readFile(t, filepath.Join(dir, "a.py")))
	assert.Contains(t, readFile(t, filepath.Join(dir, "out.txt")), "-----------------a.py---------------\nx = 1\n---")
}

func TestBundleCommand_OutputExists(t *testing.T) {
	dir := workspace(t, map[string]string{"a.py": "print(1)\n"})

	_, err := run(t, "", "bundle", "-o", "out.txt", "-l", "all", "-a", "Jane")
	require.NoError(t, err)
	first := readFile(t, filepath.Join(dir, "out.txt"))

	out, err := run(t, "", "bundle", "-o", "out.txt", "-l", "all")
	require.NoError(t, err)
	assert.Equal(t, existsMsg+"\n", out)
	assert.Equal(t, first, readFile(t, filepath.Join(dir, "out.txt")))
}

func TestBundleCommand_MissingOutputDirectory(t *testing.T) {
	workspace(t, map[string]string{"a.py": "print(1)\n"})

	out, err := run(t, "", "bundle", "-o", "nope/out.txt", "-l", "all")
	require.NoError(t, err)
	assert.Equal(t, failureMsg+"\n", out)
}

func TestBundleCommand_FailuresLoggedOnce(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
		errText string
	}{
		{
			name:    "missing output directory",
			args:    []string{"bundle", "-o", "nope/out.txt", "-l", "all"},
			message: "Output file cannot be created",
			errText: bundle.ErrDirectoryNotFound.Error(),
		},
		{
			name:    "missing scan directory",
			args:    []string{"bundle", "-o", "out.txt", "-l", "all", "-d", "absent"},
			message: "Failed to select files",
			errText: "absent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := workspace(t, map[string]string{"a.py": "print(1)\n"})
			core, logs := observer.New(zap.WarnLevel)

			out, err := runApp(t, &app{fs: osfs.New("/"), log: zap.New(core)}, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, failureMsg+"\n", out)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.message, entry.Message)
			assert.Contains(t, entry.ContextMap()["error"], tt.errText)

			_, statErr := os.Stat(filepath.Join(dir, "nope"))
			assert.True(t, os.IsNotExist(statErr))
			_, statErr = os.Stat(filepath.Join(dir, "out.txt"))
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestBundleCommand_HelpListsLanguages(t *testing.T) {
	workspace(t, nil)

	out, err := run(t, "", "bundle", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Languages: c, c++, c#, java, pyton, javascript, html, SQL, or all.")
}

func TestBundleCommand_EmptyDirectoryWithAuthor(t *testing.T) {
	dir := workspace(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))

	_, err := run(t, "", "bundle", "-o", "out.txt", "-l", "all", "-d", "src", "-a", "Jane")
	require.NoError(t, err)
	assert.Equal(t, "//name: Jane\n", readFile(t, filepath.Join(dir, "out.txt")))
}

func TestBundleCommand_ExcludesAndConfig(t *testing.T) {
	dir := workspace(t, map[string]string{
		".mybundle.yaml":          "exclude_match: segment\n",
		"src/main.c":              "int a;\n",
		"src/cabinet.c":           "int b;\n",
		"src/node_modules/dep.c":  "int c;\n",
		"src/generated/skip_me.c": "int d;\n",
	})

	_, err := run(t, "", "bundle", "-o", "out.txt", "-l", "c", "-d", "src", "-x", "generated")
	require.NoError(t, err)

	got := readFile(t, filepath.Join(dir, "out.txt"))
	assert.Contains(t, got, "cabinet.c")
	assert.Contains(t, got, "main.c")
	assert.NotContains(t, got, "dep.c")
	assert.NotContains(t, got, "skip_me.c")
}

func TestBundleCommand_ArgumentErrors(t *testing.T) {
	workspace(t, nil)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing output", args: []string{"bundle", "-l", "all"}},
		{name: "missing language", args: []string{"bundle", "-o", "out.txt"}},
		{name: "bad sort", args: []string{"bundle", "-o", "out.txt", "-l", "all", "-s", "size"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCreateRspCommand_RoundTrip(t *testing.T) {
	dir := workspace(t, map[string]string{
		"a.py":  "x = 1\n\n",
		"b.cpp": "int main() {}\n",
	})

	answers := "out.txt\npyton,c++\ntrue\nType\nfalse\nJane\n"
	out, err := run(t, answers, "create-rsp")
	require.NoError(t, err)
	assert.Contains(t, out, "response file created: rspFile.rsp")

	rspPath := filepath.Join(dir, "rspFile.rsp")
	assert.Equal(t,
		"bundle --output out.txt --language pyton,c++ --note true --sort Type --remove-empty-lines false --author Jane\n",
		readFile(t, rspPath))

	args, err := rsp.Expand(osfs.New("/"), []string{"@rspFile.rsp"})
	require.NoError(t, err)
	out, err = run(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, "bundle created: out.txt\n", out)

	want := "//name: Jane\n" +
		"-----------------b.cpp---------------\n//source: ../b.cpp\nint main() {}\n" +
		"-----------------a.py---------------\n//source: ../a.py\nx = 1\n\n"
	assert.Equal(t, want, readFile(t, filepath.Join(dir, "out.txt")))
}

func TestCreateRspCommand_InputEnds(t *testing.T) {
	workspace(t, nil)

	_, err := run(t, "out.txt\n", "create-rsp")
	assert.ErrorIs(t, err, rsp.ErrNoInput)
}

func TestConfigCommand(t *testing.T) {
	workspace(t, map[string]string{".mybundle.yaml": "rsp_file: saved.rsp\n"})

	out, err := run(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "rsp_file: saved.rsp\n")
	assert.Contains(t, out, "exclude_match: substring\n")
}

func TestVersionCommand(t *testing.T) {
	workspace(t, nil)

	out, err := run(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, err = run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "mybundle dev (commit none"))
}
