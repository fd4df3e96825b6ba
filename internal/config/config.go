package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/somya-ban/genoview/internal/motif"
)

// Config carries everything the pipeline and its collaborators need. It is
// built once from the environment and passed down explicitly; packages never
// read env vars on their own.
type Config struct {
	// scan options
	StartCodons  []string
	StopCodons   []string
	MinORFCodons int
	Motifs       []motif.Motif

	// external collaborators
	EBIEmail        string
	InterproBaseURL string
	HFToken         string
	HFModelURL      string

	DomainTimeout  time.Duration
	SummaryTimeout time.Duration
	PollInterval   time.Duration

	// logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from the environment, loading a .env file first
// when one is present. Values not set fall back to the documented defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StartCodons:     getEnvAsList("GENOVIEW_START_CODONS", []string{"ATG"}),
		StopCodons:      getEnvAsList("GENOVIEW_STOP_CODONS", []string{"TAA", "TAG", "TGA"}),
		MinORFCodons:    getEnvAsInt("GENOVIEW_MIN_ORF_CODONS", 25),
		EBIEmail:        getEnv("EBI_EMAIL", ""),
		InterproBaseURL: getEnv("GENOVIEW_INTERPRO_BASE_URL", ""),
		HFToken:         getEnv("HF_API_TOKEN", ""),
		HFModelURL:      getEnv("GENOVIEW_HF_MODEL_URL", ""),
		DomainTimeout:   getEnvAsDuration("GENOVIEW_DOMAIN_TIMEOUT_SECS", 30*time.Minute),
		SummaryTimeout:  getEnvAsDuration("GENOVIEW_SUMMARY_TIMEOUT_SECS", 2*time.Minute),
		PollInterval:    getEnvAsDuration("GENOVIEW_POLL_INTERVAL_SECS", 20*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("GENOVIEW_LOG_FILE", ""),
	}

	motifs, err := parseMotifs(getEnv("GENOVIEW_MOTIFS", ""))
	if err != nil {
		return nil, err
	}
	if motifs == nil {
		motifs = motif.Defaults()
	}
	cfg.Motifs = motifs
	return cfg, nil
}

// parseMotifs reads "name=pattern;name=pattern" into an ordered motif list.
// Pattern validity is checked later, per motif, by the scanner.
func parseMotifs(raw string) ([]motif.Motif, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var motifs []motif.Motif
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, pattern, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(pattern) == "" {
			return nil, fmt.Errorf("malformed GENOVIEW_MOTIFS entry %q (want name=pattern)", entry)
		}
		motifs = append(motifs, motif.Motif{Name: strings.TrimSpace(name), Pattern: strings.TrimSpace(pattern)})
	}
	return motifs, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.ToUpper(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
