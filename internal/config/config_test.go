package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMainConfig_Defaults(t *testing.T) {
	cfg, err := LoadMainConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "./logs", cfg.ErrorLogDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultConcurrency, cfg.MaxConcurrency)
	assert.Equal(t, DefaultItemLimit, cfg.OrderItemLimit)
	assert.Equal(t, JustificationReplace, cfg.JustificationMode)
	assert.Equal(t, ClubCometRobotics, cfg.Profile.Club.Type)
	assert.Len(t, cfg.Projects, 8)
}

func TestLoadMainConfig_YAML(t *testing.T) {
	path := writeConfig(t, `
output_dir: ./pdfs
max_concurrency: 2
order_item_limit: 5
justification_mode: append
profile:
  user:
    first_name: Ada
    last_name: Lovelace
    email: ada@example.edu
    net_id: abc123
  club:
    type: other
    name: Chess Club
    advisor:
      name: Dr. Turing
      email: turing@example.edu
projects:
  - key: Open
    display_name: Open Tournament
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./pdfs", cfg.OutputDir)
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.Equal(t, 5, cfg.OrderItemLimit)
	assert.Equal(t, JustificationAppend, cfg.JustificationMode)
	assert.Equal(t, "Ada Lovelace", cfg.Profile.User.FullName())
	assert.Equal(t, "Chess Club", cfg.Profile.Club.OrgName())
	assert.Equal(t, "turing@example.edu", cfg.Profile.Club.Advisor.Email)
	require.Len(t, cfg.Projects, 1)
	assert.Equal(t, "Open Tournament", cfg.Projects[0].Name())
}

func TestLoadMainConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvOutputDir, "/tmp/orders")
	t.Setenv(EnvMaxConcurrency, "8")
	t.Setenv(EnvOrderItemLimit, "not-a-number")
	t.Setenv(EnvNetID, "xyz789")

	cfg, err := LoadMainConfig(writeConfig(t, "output_dir: ./pdfs\norder_item_limit: 12\n"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/orders", cfg.OutputDir)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, 12, cfg.OrderItemLimit)
	assert.Equal(t, "xyz789", cfg.Profile.User.NetID)
}

func TestLoadMainConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"log level", "log_level: loud\n"},
		{"concurrency", "max_concurrency: -1\n"},
		{"item limit", "order_item_limit: -3\n"},
		{"justification mode", "justification_mode: merge\n"},
		{"club type", "profile:\n  club:\n    type: guild\n"},
		{"duplicate project", "projects:\n  - key: A\n  - key: A\n"},
		{"project without key", "projects:\n  - display_name: Nameless\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMainConfig(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadMainConfig_BadYAML(t *testing.T) {
	_, err := LoadMainConfig(writeConfig(t, "output_dir: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestFindProject(t *testing.T) {
	cfg := Default()

	p, err := cfg.FindProject("sumo")
	require.NoError(t, err)
	assert.Equal(t, "SumoBots", p.Name())

	p, err = cfg.FindProject("Full Combat")
	require.NoError(t, err)
	assert.Equal(t, "Full Combat Robots (Ants, Beetles, etc.)", p.Name())

	_, err = cfg.FindProject("Quidditch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SRP")
}

func TestResolveJustification(t *testing.T) {
	project := Project{Key: "VexU", DisplayName: "VEX U"}
	base := "These parts are needed for the VEX U team to continue research and development on their project."

	tests := []struct {
		name  string
		typed string
		mode  JustificationMode
		want  string
	}{
		{"nothing typed", "", JustificationReplace, base},
		{"nothing typed append", "  ", JustificationAppend, base},
		{"replace", "Spare motors.", JustificationReplace, "Spare motors."},
		{"append", "Spare motors.", JustificationAppend, base + "\n\nSpare motors."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveJustification(project, tt.typed, tt.mode))
		})
	}
}

func TestProjectJustification_Override(t *testing.T) {
	p := Project{Key: "Outreach", Justification: "Supplies for school visits."}
	assert.Equal(t, "Supplies for school visits.", p.ProjectJustification())
	assert.Equal(t, "Outreach", p.Name())
}

func TestClubOrgName(t *testing.T) {
	assert.Equal(t, CometRoboticsName, Club{Type: ClubCometRobotics, Name: "ignored"}.OrgName())
	assert.Equal(t, "Chess Club", Club{Type: ClubOther, Name: " Chess Club "}.OrgName())
}
