package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Portal struct {
		BaseUrl string `json:"base_url"`
		DelayMs int    `json:"request_delay_ms"`
	} `json:"portal"`
	Recipients []string `json:"recipients"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	_, err := ReadConfig[testConfig](name)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = os.WriteFile(name, []byte(`{
		// defaults
		portal: { base_url: "https://jwxt.example.com/eams", request_delay_ms: 2000 },
		recipients: ["a@example.com"],
	}`), 0644)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "https://jwxt.example.com/eams", config.Portal.BaseUrl)
	require.Equal(t, 2000, config.Portal.DelayMs)

	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{
		portal: { request_delay_ms: 10 },
	}`), 0644)
	require.NoError(t, err)

	config, err = ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "https://jwxt.example.com/eams", config.Portal.BaseUrl)
	require.Equal(t, 10, config.Portal.DelayMs)
	diff := cmp.Diff([]string{"a@example.com"}, config.Recipients)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0777))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "settings.json5"),
		[]byte(`{ recipients: ["x@example.com"] }`),
		0644,
	))

	t.Chdir(nested)

	config, err := ReadRecursively[testConfig]("settings.json5")
	require.NoError(t, err)
	require.Equal(t, []string{"x@example.com"}, config.Recipients)

	_, err = ReadRecursively[testConfig]("does-not-exist.json5")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FREEROOM_TEST_USER=alice\n"), 0644))

	t.Setenv("FREEROOM_TEST_PRESET", "kept")
	os.Unsetenv("FREEROOM_TEST_USER")
	t.Cleanup(func() { os.Unsetenv("FREEROOM_TEST_USER") })

	require.NoError(t, LoadDotenv(filepath.Join(dir, "missing.env"), path))

	values, err := RequireEnv("FREEROOM_TEST_USER", "FREEROOM_TEST_PRESET")
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "kept"}, values)

	_, err = RequireEnv("FREEROOM_TEST_UNSET_VARIABLE")
	require.Error(t, err)
}
