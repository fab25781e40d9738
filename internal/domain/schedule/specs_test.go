package schedule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpecs(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "actions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSpecTable(t *testing.T) {
	t.Parallel()
	path := writeSpecs(t, `
actions:
  - type: Join
    subject: "Welcome, {First}!"
    body: "<p>Your membership runs until {Expires}.</p>"
  - type: Expiry1
    offset_days: -30
    subject: "Expiring soon"
    body: "..."
  - type: Expiry4
    offset_days: 10
    subject: "Lapsed"
    body: "..."
`)

	table, err := LoadSpecTable(path)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, "Welcome, {First}!", table[ActionJoin].Subject)
	assert.Equal(t, -30, table[ActionExpiry1].OffsetDays)
	assert.Equal(t, 10, table[ActionExpiry4].OffsetDays)
}

func TestLoadSpecTable_MissingTerminal(t *testing.T) {
	t.Parallel()
	path := writeSpecs(t, `
actions:
  - type: Expiry1
    offset_days: -30
`)

	_, err := LoadSpecTable(path)
	assert.ErrorIs(t, err, ErrMissingTerminal)
}

func TestLoadSpecTable_DuplicateType(t *testing.T) {
	t.Parallel()
	path := writeSpecs(t, `
actions:
  - type: Expiry4
    offset_days: 10
  - type: Expiry4
    offset_days: 12
`)

	_, err := LoadSpecTable(path)
	assert.ErrorIs(t, err, ErrDuplicateSpec)
}

func TestLoadSpecTable_EmptyType(t *testing.T) {
	t.Parallel()
	path := writeSpecs(t, `
actions:
  - subject: "no type"
`)

	_, err := LoadSpecTable(path)
	assert.ErrorIs(t, err, ErrInvalidSpecTable)
}

func TestLoadSpecTable_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadSpecTable(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestExpirySpecs_OrderedByOffset(t *testing.T) {
	t.Parallel()
	table := SpecTable{
		ActionJoin:    {Type: ActionJoin},
		ActionExpiry4: {Type: ActionExpiry4, OffsetDays: 10},
		ActionExpiry1: {Type: ActionExpiry1, OffsetDays: -30},
		ActionExpiry3: {Type: ActionExpiry3, OffsetDays: 0},
		ActionExpiry2: {Type: ActionExpiry2, OffsetDays: -7},
	}

	specs := table.ExpirySpecs()
	require.Len(t, specs, 4)
	assert.Equal(t, ActionExpiry1, specs[0].Type)
	assert.Equal(t, ActionExpiry2, specs[1].Type)
	assert.Equal(t, ActionExpiry3, specs[2].Type)
	assert.Equal(t, ActionExpiry4, specs[3].Type)
}
