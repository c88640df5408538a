package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Database DatabaseConfig
	Output   OutputConfig
}

// AnalysisConfig holds the parameters of the cohort comparison
type AnalysisConfig struct {
	TargetYear   int     // season whose first game anchors the breakpoint
	DayOffset    int     // calendar days added to the season's first date
	Alpha        float64 // significance threshold for report narration only
	QQResolution int     // quantile points; 0 = max of the two sample sizes
}

// DatabaseConfig holds optional run-persistence settings
type DatabaseConfig struct {
	URL string // empty disables persistence
}

// OutputConfig holds report output paths
type OutputConfig struct {
	MarkdownPath string
	ExcelPath    string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Analysis: AnalysisConfig{
			TargetYear:   getEnvInt("HR_TARGET_YEAR", 2016),
			DayOffset:    getEnvInt("HR_BREAK_OFFSET_DAYS", 50),
			Alpha:        getEnvFloat("HR_ALPHA", 0.05),
			QQResolution: getEnvInt("HR_QQ_RESOLUTION", 0),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Output: OutputConfig{
			MarkdownPath: getEnv("HR_REPORT_MD", ""),
			ExcelPath:    getEnv("HR_REPORT_XLSX", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Analysis.TargetYear < 1900 {
		return fmt.Errorf("invalid HR_TARGET_YEAR: %d", c.Analysis.TargetYear)
	}
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha >= 1 {
		return fmt.Errorf("invalid HR_ALPHA: %g (must be in (0,1))", c.Analysis.Alpha)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
