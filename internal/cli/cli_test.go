package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/JonMunkholm/bizreg/internal/cli"
	"github.com/JonMunkholm/bizreg/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend keeps registrations in memory.
type memBackend struct {
	mu         sync.Mutex
	rows       []core.BusinessWithItems
	migrations int
	closed     int
	schemaErr  error
}

func (m *memBackend) EnsureSchema(context.Context) error {
	m.migrations++
	return m.schemaErr
}

func (m *memBackend) Create(_ context.Context, b core.Business, items []core.Item) (core.BusinessID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = core.BusinessID(len(m.rows) + 1)
	for i := range items {
		items[i].ID = int64(i + 1)
		items[i].BusinessID = b.ID
	}
	m.rows = append(m.rows, core.BusinessWithItems{Business: b, Items: append([]core.Item{}, items...)})
	return b.ID, nil
}

func (m *memBackend) ListAll(context.Context) ([]core.BusinessWithItems, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.BusinessWithItems{}, m.rows...), nil
}

func (m *memBackend) opener() cli.Opener {
	return func(context.Context) (cli.Backend, func(), error) {
		return m, func() { m.closed++ }, nil
	}
}

const validPayload = `{"businessName":"Sharma Kirana","businessMobile":"9876543210","type":"Grocery",
"timings":"9am-9pm","ownerName":"Ravi Sharma","ownerMobile":"9123456780","location":"Pune",
"items":[{"itemName":"Rice","quantity":"10","unit":"kg","buyingPrice":"40.5","sellingPrice":"45.0","requirementType":"restock"}]}`

func run(t *testing.T, backend *memBackend, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest(backend.opener())
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writePayload(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registration.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestMigrateCommand(t *testing.T) {
	backend := &memBackend{}

	out, err := run(t, backend, "", "migrate")

	require.NoError(t, err)
	assert.Contains(t, out, "schema ready")
	assert.Equal(t, 1, backend.migrations)
	assert.Equal(t, 1, backend.closed)
}

func TestMigrateCommand_Failure(t *testing.T) {
	backend := &memBackend{schemaErr: errors.New("connection refused")}

	_, err := run(t, backend, "", "migrate")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB004")
}

func TestSubmitCommand_File(t *testing.T) {
	backend := &memBackend{}

	out, err := run(t, backend, "", "submit", writePayload(t, validPayload))

	require.NoError(t, err)
	assert.Contains(t, out, core.MsgSubmitted)
	require.Len(t, backend.rows, 1)
	assert.Equal(t, "Sharma Kirana", backend.rows[0].BusinessName)
	require.Len(t, backend.rows[0].Items, 1)
}

func TestSubmitCommand_Stdin(t *testing.T) {
	backend := &memBackend{}

	out, err := run(t, backend, validPayload, "submit", "-")

	require.NoError(t, err)
	assert.Contains(t, out, core.MsgSubmitted)
	assert.Len(t, backend.rows, 1)
}

func TestSubmitCommand_Rejected(t *testing.T) {
	backend := &memBackend{}
	bad := strings.Replace(validPayload, `"ownerMobile":"9123456780"`, `"ownerMobile":"9876543210"`, 1)

	out, err := run(t, backend, "", "submit", writePayload(t, bad))

	require.Error(t, err)
	assert.Contains(t, out, core.MsgMobilesMatch)
	assert.Empty(t, backend.rows)
}

func TestSubmitCommand_MissingFile(t *testing.T) {
	backend := &memBackend{}

	_, err := run(t, backend, "", "submit", filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, err)
	assert.Zero(t, backend.closed, "backend should not be opened for unreadable input")
}

func TestSubmitCommand_RequiresArg(t *testing.T) {
	_, err := run(t, &memBackend{}, "", "submit")
	assert.Error(t, err)
}

func TestListCommand_Text(t *testing.T) {
	backend := &memBackend{}
	_, err := run(t, backend, validPayload, "submit", "-")
	require.NoError(t, err)

	out, err := run(t, backend, "", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "#1 Sharma Kirana (Grocery)")
	assert.Contains(t, out, "owner: Ravi Sharma 9123456780")
	assert.Contains(t, out, "- Rice - 10 kg | Buy ₹40.5 | Sell ₹45.0 | restock")
}

func TestListCommand_Empty(t *testing.T) {
	out, err := run(t, &memBackend{}, "", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "no businesses stored")
}

func TestListCommand_JSON(t *testing.T) {
	backend := &memBackend{}
	_, err := run(t, backend, validPayload, "submit", "-")
	require.NoError(t, err)

	out, err := run(t, backend, "", "list", "--json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got), "output should be valid JSON")
	require.Len(t, got, 1)
	assert.Equal(t, "Sharma Kirana", got[0]["businessName"])
	assert.Len(t, got[0]["items"], 1)
}

func TestOpenerError(t *testing.T) {
	cmd := cli.NewRootCmdForTest(func(context.Context) (cli.Backend, func(), error) {
		return nil, nil, errors.New("DATABASE_URL is required")
	})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"list"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestCommands_PrepareSchemaFirst(t *testing.T) {
	backend := &memBackend{}

	_, err := run(t, backend, validPayload, "submit", "-")
	require.NoError(t, err)
	_, err = run(t, backend, "", "list")
	require.NoError(t, err)

	assert.Equal(t, 2, backend.migrations)
	assert.Equal(t, 2, backend.closed)
}

func TestCommands_SchemaFailureStopsWork(t *testing.T) {
	backend := &memBackend{schemaErr: errors.New("connection refused")}

	_, err := run(t, backend, validPayload, "submit", "-")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB004")
	assert.Empty(t, backend.rows)
	assert.Equal(t, 1, backend.closed)
}
