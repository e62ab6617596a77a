package user

import (
	"strconv"
	"strings"
	"testing"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil"
	clitest "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndShowUser(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{"--email", "ada@example.com", "--quiet"})
	require.NoError(t, err)
	id := strings.TrimSpace(output)
	_, err = strconv.Atoi(id)
	require.NoError(t, err)

	output, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{id, "--json"})
	require.NoError(t, err)
	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, "ada@example.com", data["email"])
	assert.Equal(t, "ada", data["name"], "name defaults to the local part")

	output, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{id})
	require.NoError(t, err)
	assert.Contains(t, output, "ada@example.com")
}

func TestCreateUser_Errors(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{"--email", "dup@example.com", "--quiet"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		cmdArgs  []string
		wantCode int
	}{
		{"invalid email", []string{"--email", "not-an-email"}, cli.ExitValidation},
		{"duplicate email", []string{"--email", "dup@example.com"}, cli.ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), append(tt.cmdArgs, "--json"))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cli.ExitCodeFor(err))
			assert.Equal(t, false, testutil.ParseJSON(t, output)["success"])
		})
	}

	_, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"77", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
}
