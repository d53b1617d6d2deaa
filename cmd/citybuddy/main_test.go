package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ngmaloney/citybuddy/internal/assistant"
	"github.com/ngmaloney/citybuddy/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv writes a config that keeps the database and log in a temp dir
func testEnv(t *testing.T) (configPath, dbPath string) {
	t.Helper()
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Logging.File = filepath.Join(dir, "citybuddy.log")
	configPath = filepath.Join(dir, "citybuddy.yaml")
	require.NoError(t, cfg.Save(configPath))

	return configPath, filepath.Join(dir, "citybuddy.db")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRecommendCmd(t *testing.T) {
	configPath, dbPath := testEnv(t)

	out, err := execute(t, "--config", configPath, "--db", dbPath, "recommend", "Parks", "&", "Recreation")
	require.NoError(t, err)

	assert.Contains(t, out, "Parks & Recreation near M5H 2N2")
	assert.Contains(t, out, "CityBuddy picks")
	assert.True(t, strings.Index(out, "Osgoode Hall") < strings.Index(out, "Trinity Bellwoods Park"),
		"nearest place should come first")
	assert.Contains(t, out, "https://www.google.com/maps/search/")
	assert.FileExists(t, dbPath)
}

func TestRecommendCmd_RequiresCategory(t *testing.T) {
	configPath, dbPath := testEnv(t)

	_, err := execute(t, "--config", configPath, "--db", dbPath, "recommend")
	assert.Error(t, err)
}

func TestEmergencyCmd(t *testing.T) {
	configPath, dbPath := testEnv(t)

	out, err := execute(t, "--config", configPath, "--db", dbPath, "emergency")
	require.NoError(t, err)

	assert.Contains(t, out, "call 911")
	assert.Contains(t, out, "[HOSPITAL]")
	assert.Contains(t, out, "[CLINIC]")
	assert.Contains(t, out, "[POLICE]")
}

func TestRoommatesCmd(t *testing.T) {
	configPath, dbPath := testEnv(t)

	out, err := execute(t, "--config", configPath, "--db", dbPath, "roommates")
	require.NoError(t, err)
	assert.Contains(t, out, "Marcus L.")

	out, err = execute(t, "--config", configPath, "--db", dbPath, "roommates", "match", "2", "--agreement")
	require.NoError(t, err)
	assert.Contains(t, out, "Marcus L.: ")
	assert.Contains(t, out, "% match")
	assert.Contains(t, out, assistant.FallbackAgreement)

	_, err = execute(t, "--config", configPath, "--db", dbPath, "roommates", "match", "99")
	assert.ErrorContains(t, err, "no roommate")
}

func TestChatCmd_WithoutKeyUsesFallback(t *testing.T) {
	configPath, dbPath := testEnv(t)

	out, err := execute(t, "--config", configPath, "--db", dbPath, "chat", "where", "is", "the", "CN", "Tower?")
	require.NoError(t, err)
	assert.Equal(t, assistant.FallbackChatReply+"\n", out)
}

func TestProfileCmds(t *testing.T) {
	configPath, dbPath := testEnv(t)

	out, err := execute(t, "--config", configPath, "--db", dbPath, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No profile yet")

	out, err = execute(t, "--config", configPath, "--db", dbPath, "profile", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile deleted")

	out, err = execute(t, "--config", configPath, "--db", dbPath, "profile", "restart")
	require.NoError(t, err)
	assert.Contains(t, out, "Onboarding will run on next start")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "citybuddy.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_postal_code: M5H 2N2")

	_, err = execute(t, "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestMapCmd_FallsBackToDowntown(t *testing.T) {
	configPath, dbPath := testEnv(t)

	out, err := execute(t, "--config", configPath, "--db", dbPath, "map")
	require.NoError(t, err)

	assert.Contains(t, out, "Downtown Toronto, ON (M5H 2N2)")
	assert.Contains(t, out, "Coordinates: 43.6532, -79.3832")
	assert.Contains(t, out, "https://www.openstreetmap.org/search?query=M5H%202N2")
	assert.Contains(t, out, "marker=43.6532,-79.3832")
}
