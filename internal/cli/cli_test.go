package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/backpack/internal/journal"
	"github.com/mesh-intelligence/backpack/pkg/types"
)

// testEnv isolates config and data directories for one test.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, k := range []string{"BACKPACK_JOURNAL", "BACKPACK_OUTPUT", "BACKPACK_LOG_LEVEL", "BACKPACK_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	return &testEnv{
		t:         t,
		configDir: filepath.Join(t.TempDir(), "config"),
		dataDir:   filepath.Join(t.TempDir(), "data"),
	}
}

// run executes the CLI with stdin and returns stdout.
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(stdin string, args ...string) string {
	e.t.Helper()
	out, err := e.run(stdin, args...)
	require.NoError(e.t, err, out)
	return out
}

func (e *testEnv) writeConfig(content string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(e.t, os.WriteFile(filepath.Join(e.configDir, configFileExt), []byte(content), 0o644))
}

const loadoutScript = `add Rifle Weapon 2 5
add Medkit Heal 3 3
add Ammo Weapon 50 2
`

// orderIn reports whether the words appear in s in the given order.
func orderIn(s string, words ...string) bool {
	pos := 0
	for _, w := range words {
		i := strings.Index(s[pos:], w)
		if i < 0 {
			return false
		}
		pos += i + len(w)
	}
	return true
}

func TestVersion(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun("", "version")
	assert.Contains(t, out, "backpack v0.1.0")
	assert.Contains(t, out, modulePath)
}

func TestInit(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun("", "init")
	assert.Contains(t, out, "Backpack initialized successfully")
	assert.Contains(t, out, "(created)")

	data, err := os.ReadFile(filepath.Join(e.configDir, configFileExt))
	require.NoError(t, err)
	assert.Contains(t, string(data), "journal: true")
	assert.Contains(t, string(data), "data_dir: "+e.dataDir)

	_, err = os.Stat(filepath.Join(e.dataDir, journal.FileName))
	require.NoError(t, err)

	out = e.mustRun("", "init")
	assert.NotContains(t, out, "(created)")
}

func TestShell_Scenario(t *testing.T) {
	e := newTestEnv(t)
	script := loadoutScript + `list
sort type
list
sort priority
bfind medkit
sort name
bfind Medkit
bfind shield
remove rifle
bfind medkit
exit
add Never Reached 1 1
`
	out := e.mustRun(script, "shell", "--no-prompt")

	assert.Contains(t, out, `Added "rifle" (weapon x2, priority 5).`)
	assert.Contains(t, out, "Backpack 3/10 - unsorted")
	assert.True(t, orderIn(out, "Backpack 3/10 - unsorted", "rifle", "medkit", "ammo"))

	assert.Contains(t, out, "Sorted by type: 3 comparisons.")
	assert.True(t, orderIn(out, "Backpack 3/10 - sorted (type)", "medkit", "ammo", "rifle"))

	assert.Contains(t, out, "Sorted by priority: 2 comparisons.")
	assert.True(t, orderIn(out, "Sorted by priority", "error: "+types.ErrPreconditionViolated.Error()))

	assert.True(t, orderIn(out, "Sorted by name", `Found "medkit" (binary search)`, "error: item not found: \"shield\""))
	assert.True(t, orderIn(out, `Removed "rifle".`, "error: "+types.ErrPreconditionViolated.Error()))
	assert.NotContains(t, out, "never")
}

func TestShell_Rejections(t *testing.T) {
	e := newTestEnv(t)
	script := `remove ghost
add Shield Armor 0 3
add Shield Armor three 3
add Shield Armor 1 9
add Shield Armor -1 3
sort size
find shield
add "Night Vision" Optics 1 4
find night vision
nonsense
list
`
	out := e.mustRun(script, "shell", "--no-prompt")

	assert.Contains(t, out, "error: "+types.ErrEmpty.Error())
	assert.Contains(t, out, "error: "+types.ErrInvalidQuantity.Error()+": \"three\"")
	assert.Contains(t, out, "error: "+types.ErrInvalidPriority.Error())
	assert.Contains(t, out, "error: "+types.ErrUnknownCriterion.Error())
	assert.Contains(t, out, `Found "night vision" (sequential search)`)
	assert.Contains(t, out, `unknown command "nonsense"`)
	assert.Contains(t, out, "Backpack 1/10 - unsorted")
}

func TestShell_FullBackpack(t *testing.T) {
	e := newTestEnv(t)
	var sb strings.Builder
	for i := range types.Capacity + 1 {
		sb.WriteString("add item")
		sb.WriteByte(byte('a' + i))
		sb.WriteString(" misc 1 1\n")
	}
	sb.WriteString("add late misc x 1\n")

	out := e.mustRun(sb.String(), "shell", "--no-prompt")
	assert.Equal(t, 2, strings.Count(out, "error: "+types.ErrFull.Error()))
}

func TestShell_OverlongLine(t *testing.T) {
	e := newTestEnv(t)
	long := "add " + strings.Repeat("x", 70000) + " misc 1 1\n"
	out := e.mustRun(long+"add Rifle Weapon 2 5\nlist\n", "shell", "--no-prompt")

	assert.Contains(t, out, "Backpack 2/10 - unsorted")
	assert.True(t, orderIn(out, strings.Repeat("x", types.MaxNameLen), "rifle"))
	assert.NotContains(t, out, strings.Repeat("x", types.MaxNameLen+1))

	out = e.mustRun(long+"add Rifle Weapon 2 5\nlist\n", "--json", "run", "--strict", "-")
	assert.Contains(t, out, `"count": 2`)
}

func TestShell_NamesStartingWithDash(t *testing.T) {
	e := newTestEnv(t)
	script := `find -x
remove -x
add -x misc 1 1
find -x
sort name
bfind -x
remove -x
`
	out := e.mustRun(script, "shell", "--no-prompt")

	assert.Contains(t, out, `error: item not found: "-x"`)
	assert.Contains(t, out, "error: "+types.ErrEmpty.Error())
	assert.Contains(t, out, `Found "-x" (sequential search)`)
	assert.Contains(t, out, `Found "-x" (binary search)`)
	assert.Contains(t, out, `Removed "-x".`)
	assert.NotContains(t, out, "unknown shorthand flag")
}

func TestShell_TrivialSort(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun("sort 3\n", "shell", "--no-prompt")
	assert.Contains(t, out, "Nothing to sort (0 or 1 item). Backpack marked sorted (priority).")
}

func TestRun_Strict(t *testing.T) {
	e := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "loadout.txt")
	require.NoError(t, os.WriteFile(path, []byte("# loadout\nadd Rifle Weapon 2 5\nadd Shield Armor 0 3\nlist\n"), 0o644))

	out, err := e.run("", "run", "--strict", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidQuantity)
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, exitUserError, exitCode(err))
	assert.Contains(t, out, "backpack> add Rifle Weapon 2 5")
	assert.NotContains(t, out, "Backpack 1/10")

	out = e.mustRun("", "run", path)
	assert.Contains(t, out, "error: line 3:")
	assert.Contains(t, out, "Backpack 1/10 - unsorted")
}

func TestRun_JSONFromStdin(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun(loadoutScript+"sort priority\nlist\n", "--json", "run", "-")

	dec := json.NewDecoder(strings.NewReader(out))
	var docs []map[string]any
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err, out)
		docs = append(docs, doc)
	}
	require.Len(t, docs, 5)

	assert.Equal(t, "priority", docs[3]["criterion"])
	assert.Equal(t, float64(2), docs[3]["comparisons"])

	listing := docs[4]
	assert.Equal(t, "sorted (priority)", listing["state"])
	items := listing["items"].([]any)
	require.Len(t, items, 3)
	assert.Equal(t, "rifle", items[0].(map[string]any)["name"])
	assert.Equal(t, "ammo", items[2].(map[string]any)["name"])
}

func TestRun_YAMLOutput(t *testing.T) {
	e := newTestEnv(t)
	e.writeConfig("output: yaml\n")

	out := e.mustRun("add Rifle Weapon 2 5\nlist\nsort name\n", "run", "-")
	assert.Contains(t, out, "state: unsorted")
	assert.Contains(t, out, "name: rifle")
	assert.Contains(t, out, "slot: 0")
	assert.Contains(t, out, "trivial: true")
	assert.NotContains(t, out, "backpack> ")

	out = e.mustRun("", "history", "--session", "last")
	assert.Contains(t, out, "session_id:")
	assert.Contains(t, out, "created_at:")
	assert.NotContains(t, out, "sessionid")
	assert.NotContains(t, out, "createdat")
}

func TestHistory(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun("", "history")
	assert.Contains(t, out, "No sessions recorded.")

	e.mustRun(loadoutScript+"bfind rifle\n", "shell", "--no-prompt")

	out = e.mustRun("", "history")
	assert.Contains(t, out, "shell")
	assert.Contains(t, out, "Total: 1 session(s)")

	out = e.mustRun("", "history", "--session", "last")
	assert.Contains(t, out, "add Rifle Weapon 2 5")
	assert.True(t, orderIn(out, "bfind rifle", types.OutcomeRejected))

	exportPath := filepath.Join(t.TempDir(), "session.jsonl")
	out = e.mustRun("", "history", "--session", "last", "--export", exportPath)
	assert.Contains(t, out, "Exported 4 entries")

	out = e.mustRun("", "history", "--from", exportPath)
	assert.Contains(t, out, "add Medkit Heal 3 3")

	_, err := e.run("", "history", "--export", exportPath)
	assert.Error(t, err)

	_, err = e.run("", "history", "--session", "no-such-session")
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
}

func TestJournalDisabled(t *testing.T) {
	e := newTestEnv(t)
	e.writeConfig("journal: false\n")

	e.mustRun(loadoutScript, "shell", "--no-prompt")

	_, err := os.Stat(filepath.Join(e.dataDir, journal.FileName))
	assert.True(t, os.IsNotExist(err), "journal.db should not be created")
}

func TestLogLevelFlag_CaseInsensitive(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun("", "--log-level", "DEBUG", "version")
	assert.Contains(t, out, "backpack v")
}

func TestConfig_Invalid(t *testing.T) {
	e := newTestEnv(t)
	e.writeConfig("output: xml\n")

	_, err := e.run("", "version")
	assert.ErrorIs(t, err, types.ErrOutputUnknown)

	e = newTestEnv(t)
	_, err = e.run("", "--log-level", "loud", "version")
	assert.ErrorIs(t, err, types.ErrLogLevelUnknown)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(types.ErrFull))
	assert.Equal(t, exitSysError, exitCode(sysErrorf("disk: %w", os.ErrPermission)))
}
