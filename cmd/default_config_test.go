package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsn-coverage/wsn-coverage/sim"
)

// newTestCommand returns a command with the experiment flags registered.
// Registration resets every flag variable to its default.
func newTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addExperimentFlags(cmd)
	return cmd
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const testDefaults = `
version: "1"
presets:
  plain: {}
  small:
    region:
      width: 20
      height: 10
    trials: 3
    seed: 9
`

func TestLoadDefaultsConfig_UnknownTopLevelKey_Fails(t *testing.T) {
	// GIVEN a defaults file with a typo in a section name
	path := writeFile(t, "defaults.yaml", "version: \"1\"\npresetz: {}\n")

	// WHEN it is loaded
	_, err := loadDefaultsConfig(path)

	// THEN strict parsing rejects it
	assert.Error(t, err)
}

func TestLoadDefaultsConfig_MissingFile_Fails(t *testing.T) {
	_, err := loadDefaultsConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPresetNames_Sorted(t *testing.T) {
	path := writeFile(t, "defaults.yaml", testDefaults)
	cfg, err := loadDefaultsConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"plain", "small"}, presetNames(cfg))
}

func TestLoadPreset_LayersOverDefaults(t *testing.T) {
	path := writeFile(t, "defaults.yaml", testDefaults)

	// WHEN a preset that changes only a few fields is loaded
	cfg, err := loadPreset(path, "small")
	require.NoError(t, err)

	// THEN those fields change and everything else keeps its default
	defaults := sim.DefaultExperimentConfig()
	assert.Equal(t, 20.0, cfg.Region.Width)
	assert.Equal(t, 10.0, cfg.Region.Height)
	assert.Equal(t, defaults.Region.CellsPerUnit, cfg.Region.CellsPerUnit)
	assert.Equal(t, 3, cfg.Trials)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, defaults.Sweep, cfg.Sweep)
	assert.Equal(t, defaults.Milestones, cfg.Milestones)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPreset_EmptyPreset_EqualsDefaults(t *testing.T) {
	path := writeFile(t, "defaults.yaml", testDefaults)

	cfg, err := loadPreset(path, "plain")
	require.NoError(t, err)

	assert.Equal(t, sim.DefaultExperimentConfig(), cfg)
}

func TestLoadPreset_UnknownName_Fails(t *testing.T) {
	path := writeFile(t, "defaults.yaml", testDefaults)

	_, err := loadPreset(path, "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "small", "error should list available presets")
}

func TestLoadPreset_UnknownField_Fails(t *testing.T) {
	// GIVEN a preset with a misspelled field
	path := writeFile(t, "defaults.yaml", "presets:\n  bad:\n    trails: 3\n")

	// WHEN it is loaded
	_, err := loadPreset(path, "bad")

	// THEN the typo is reported rather than silently ignored
	assert.Error(t, err)
}

func TestRepoDefaultsFile_AllPresetsValid(t *testing.T) {
	path := "../defaults.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("defaults.yaml not found, skipping integration test")
	}
	defaults, err := loadDefaultsConfig(path)
	require.NoError(t, err)
	require.NotEmpty(t, defaults.Presets)

	for _, name := range presetNames(defaults) {
		cfg, err := loadPreset(path, name)
		require.NoError(t, err, name)
		assert.NoError(t, cfg.Validate(), name)
	}
}

func TestResolveConfig_NoFlags_ReturnsDefaults(t *testing.T) {
	cmd := newTestCommand(t)

	cfg, err := resolveConfig(cmd)

	require.NoError(t, err)
	assert.Equal(t, sim.DefaultExperimentConfig(), cfg)
}

func TestResolveConfig_ChangedFlagsOverridePreset(t *testing.T) {
	// GIVEN a preset setting trials=3 and seed=9
	cmd := newTestCommand(t)
	path := writeFile(t, "defaults.yaml", testDefaults)
	require.NoError(t, cmd.Flags().Set("defaults-filepath", path))
	require.NoError(t, cmd.Flags().Set("preset", "small"))

	// WHEN --seed is set explicitly and --trials is left alone
	require.NoError(t, cmd.Flags().Set("seed", "123"))
	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)

	// THEN the flag wins for seed and the preset value survives for trials
	assert.Equal(t, int64(123), cfg.Seed)
	assert.Equal(t, 3, cfg.Trials)
	assert.Equal(t, 20.0, cfg.Region.Width)
}

func TestResolveConfig_UnchangedFlagsDoNotOverwriteConfigFile(t *testing.T) {
	// GIVEN a config file whose trials differ from the flag default
	cmd := newTestCommand(t)
	path := writeFile(t, "exp.yaml", "trials: 4\ntarget_coverage: 90\n")
	require.NoError(t, cmd.Flags().Set("config", path))

	// WHEN resolving without touching --trials
	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)

	// THEN the file values are kept
	assert.Equal(t, 4, cfg.Trials)
	assert.Equal(t, 90.0, cfg.TargetCoverage)
}

func TestResolveConfig_TOMLConfigWithFlagOverride(t *testing.T) {
	cmd := newTestCommand(t)
	path := writeFile(t, "exp.toml", "trials = 4\n\n[region]\nwidth = 30.0\n")
	require.NoError(t, cmd.Flags().Set("config", path))
	require.NoError(t, cmd.Flags().Set("width", "45"))

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, 45.0, cfg.Region.Width)
	assert.Equal(t, 4, cfg.Trials)
}

func TestResolveConfig_MilestonesFlag_Normalized(t *testing.T) {
	// GIVEN milestones given out of order with a duplicate
	cmd := newTestCommand(t)
	require.NoError(t, cmd.Flags().Set("milestones", "50,5,5,1"))

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)

	// THEN they are sorted and deduplicated
	assert.Equal(t, []int{1, 5, 50}, cfg.Milestones)
}

func TestResolveConfig_MissingConfigFile_Fails(t *testing.T) {
	cmd := newTestCommand(t)
	require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")))

	_, err := resolveConfig(cmd)

	assert.Error(t, err)
}
