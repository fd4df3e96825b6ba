package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"GENOVIEW_START_CODONS", "GENOVIEW_STOP_CODONS", "GENOVIEW_MIN_ORF_CODONS",
		"GENOVIEW_MOTIFS", "EBI_EMAIL", "HF_API_TOKEN", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"ATG"}, cfg.StartCodons)
	assert.Equal(t, []string{"TAA", "TAG", "TGA"}, cfg.StopCodons)
	assert.Equal(t, 25, cfg.MinORFCodons)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 20*time.Second, cfg.PollInterval)
	require.NotEmpty(t, cfg.Motifs)
	assert.Equal(t, "TATA_BOX_LIKE", cfg.Motifs[0].Name)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GENOVIEW_START_CODONS", "atg,gtg")
	t.Setenv("GENOVIEW_STOP_CODONS", "TAA")
	t.Setenv("GENOVIEW_MIN_ORF_CODONS", "10")
	t.Setenv("GENOVIEW_MOTIFS", "BOX_A=TATA; BOX_B=GG[CT]CC")
	t.Setenv("EBI_EMAIL", "user@example.org")
	t.Setenv("GENOVIEW_SUMMARY_TIMEOUT_SECS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"ATG", "GTG"}, cfg.StartCodons)
	assert.Equal(t, []string{"TAA"}, cfg.StopCodons)
	assert.Equal(t, 10, cfg.MinORFCodons)
	assert.Equal(t, "user@example.org", cfg.EBIEmail)
	assert.Equal(t, 5*time.Second, cfg.SummaryTimeout)
	require.Len(t, cfg.Motifs, 2)
	assert.Equal(t, "BOX_A", cfg.Motifs[0].Name)
	assert.Equal(t, "GG[CT]CC", cfg.Motifs[1].Pattern)
}

func TestLoadRejectsMalformedMotifs(t *testing.T) {
	t.Setenv("GENOVIEW_MOTIFS", "missing-pattern")
	_, err := Load()
	require.Error(t, err)
}
