package cli_test

import (
	"testing"

	"bookstore-service/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := cli.NewRootCmdForTest()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
	assert.Contains(t, names, "create-admin")
}

func TestCreateAdminCmd_RequiresCredentials(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"create-admin", "--email", "admin@example.com"})
	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestMigrateCmd_IncompleteConfig(t *testing.T) {
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_DB", "")
	t.Setenv("POSTGRES_HOST", "")

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"migrate"})
	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database config incomplete")
}
