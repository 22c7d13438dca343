package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"realty_feasibility/pkg/core/feasibility"
)

// DefaultPath is read when FEASIBILITY_CONFIG is not set.
const DefaultPath = "config/feasibility.yaml"

type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Store   StoreConfig   `yaml:"store"`
	Server  ServerConfig  `yaml:"server"`
	Byelaws ByelawsConfig `yaml:"byelaws"`
}

type EngineConfig struct {
	CashFlowPolicy string                   `yaml:"cash_flow_policy"`
	Solver         feasibility.SolverConfig `yaml:"solver"`
}

type StoreConfig struct {
	DatabaseURL string `yaml:"database_url"` // empty = file store only
	Dir         string `yaml:"dir"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type ByelawsConfig struct {
	ModelID   string `yaml:"model_id"`
	InputPath string `yaml:"input_path"`
	OutputDir string `yaml:"output_dir"`
}

// Default mirrors config/feasibility.yaml as shipped.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			CashFlowPolicy: string(feasibility.PolicyFrontLoaded),
			Solver:         feasibility.DefaultSolverConfig(),
		},
		Store: StoreConfig{
			Dir: filepath.Join(".cache", "feasibility", "reports"),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Byelaws: ByelawsConfig{
			ModelID:   "gemini-2.5-flash",
			InputPath: filepath.Join("testdata", "sample_bmc_bye_laws.txt"),
			OutputDir: "outputs",
		},
	}
}

// Load reads .env (if present), then the YAML file at path, then applies
// environment overrides. A missing YAML file is not an error; the defaults
// are used instead. An empty path means FEASIBILITY_CONFIG or DefaultPath.
func Load(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("FEASIBILITY_CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		fmt.Printf("[CONFIG] %s not found, using defaults\n", path)
	default:
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		key    string
		target *string
	}{
		{"DATABASE_URL", &c.Store.DatabaseURL},
		{"FEASIBILITY_STORE_DIR", &c.Store.Dir},
		{"FEASIBILITY_ADDR", &c.Server.Addr},
		{"FEASIBILITY_CASH_FLOW_POLICY", &c.Engine.CashFlowPolicy},
		{"LANGEXTRACT_MODEL_ID", &c.Byelaws.ModelID},
		{"BMC_BYELAWS_PATH", &c.Byelaws.InputPath},
		{"OUTPUT_DIR", &c.Byelaws.OutputDir},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.target = v
		}
	}
}

// Options converts the engine section into run options.
func (c Config) Options() feasibility.Options {
	return feasibility.Options{
		Policy: feasibility.CashFlowPolicy(c.Engine.CashFlowPolicy),
		Solver: c.Engine.Solver,
	}
}
