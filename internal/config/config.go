package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bagcalc/internal/bags"
	"bagcalc/internal/engine"
	"bagcalc/internal/stats"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings mirrors the BAGCALC_* environment variables.
type Settings struct {
	ExactThreshold1     int           `env:"BAGCALC_EXACT_THRESHOLD_BAG1"   envDefault:"100"`
	ExactThreshold2     int           `env:"BAGCALC_EXACT_THRESHOLD_BAG2"   envDefault:"100"`
	Timeout             time.Duration `env:"BAGCALC_TIMEOUT"                envDefault:"15s"`
	TopSumsProximity    float64       `env:"BAGCALC_TOP_SUMS_PROXIMITY"     envDefault:"0.001"`
	NormalBackend       string        `env:"BAGCALC_NORMAL_BACKEND"         envDefault:"gonum"`
	BagsFile            string        `env:"BAGCALC_BAGS_FILE"`
	DataPath            string        `env:"BAGCALC_DATA_PATH"`
	EnableMermaidCharts bool          `env:"BAGCALC_ENABLE_MERMAID_CHARTS"  envDefault:"false"`
	LogsFolder          string        `env:"BAGCALC_LOGS_FOLDER"`
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Engine              engine.Config
	Normal              stats.StandardNormal
	Bags                bags.Pair
	DataPath            string
	BagsFile            string
	EnableMermaidCharts bool
	// LogDir defaults to <DataPath>/logs.
	LogDir string
	// EnvFiles lists the .env files Load applied, in order.
	EnvFiles []string
}

// Load loads the configuration from .env files and environment variables.
// It runs before logging is set up, so the files it applied are reported
// through AppConfig.EnvFiles.
func Load() (*AppConfig, error) {
	var loaded []string

	// 1. Executable directory first; MCP clients rarely start us in a useful cwd.
	exeDir := ""
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			loaded = append(loaded, envPath)
		}
	}

	// 2. Fallback to current working directory
	if err := godotenv.Load(); err == nil {
		loaded = append(loaded, ".env")
	}

	cfg, err := FromEnv(exeDir)
	if err != nil {
		return nil, err
	}
	cfg.EnvFiles = loaded
	return cfg, nil
}

// FromEnv builds the configuration from the process environment only.
// defaultDataPath is used when BAGCALC_DATA_PATH is unset.
func FromEnv(defaultDataPath string) (*AppConfig, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return s.Build(defaultDataPath)
}

// Build validates s and resolves it into an AppConfig.
func (s Settings) Build(defaultDataPath string) (*AppConfig, error) {
	dataPath := s.DataPath
	if dataPath == "" {
		dataPath = defaultDataPath
	}
	if dataPath == "" {
		dataPath = "."
	}

	normal, err := stats.NewStandardNormal(stats.Backend(s.NormalBackend))
	if err != nil {
		return nil, err
	}

	engCfg := engine.Config{
		ExactThreshold1:        s.ExactThreshold1,
		ExactThreshold2:        s.ExactThreshold2,
		Timeout:                s.Timeout,
		ApproximationAvailable: normal != nil,
		TopSumsProximity:       s.TopSumsProximity,
	}
	if err := engCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	bagsFile := s.BagsFile
	if bagsFile != "" && !filepath.IsAbs(bagsFile) {
		bagsFile = filepath.Join(dataPath, bagsFile)
	}
	pair, err := bags.LoadFile(bagsFile)
	if err != nil {
		return nil, err
	}

	logDir := s.LogsFolder
	if logDir == "" {
		logDir = filepath.Join(dataPath, "logs")
	}

	return &AppConfig{
		Engine:              engCfg,
		Normal:              normal,
		Bags:                pair,
		DataPath:            dataPath,
		BagsFile:            bagsFile,
		EnableMermaidCharts: s.EnableMermaidCharts,
		LogDir:              logDir,
	}, nil
}
