package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultVLMModel   = "gemini-2.0-flash"
	DefaultImageModel = "gemini-3-pro-image-preview"
)

type Config struct {
	DataDir string
	DBPath  string

	Provider      string
	VLMModel      string
	ImageModel    string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string

	Iterations    int
	RetrievalCap  int
	RenderTimeout time.Duration
	Width         int
	Height        int
	Python        string
}

// fileConfig is the optional ~/.figgen/config.yaml overlay. Zero values mean
// "not set" and leave the compiled defaults alone.
type fileConfig struct {
	Provider             string `yaml:"provider"`
	VLMModel             string `yaml:"vlm_model"`
	ImageModel           string `yaml:"image_model"`
	Iterations           int    `yaml:"iterations"`
	RetrievalCap         int    `yaml:"retrieval_cap"`
	RenderTimeoutSeconds int    `yaml:"render_timeout_seconds"`
	Width                int    `yaml:"width"`
	Height               int    `yaml:"height"`
	Python               string `yaml:"python"`
}

func New() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dataDir := getEnv("FIGGEN_DATA_DIR", filepath.Join(homeDir, ".figgen"))

	c := &Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, "figgen.db"),
		Provider:      "gemini",
		VLMModel:      DefaultVLMModel,
		ImageModel:    DefaultImageModel,
		Iterations:    3,
		RetrievalCap:  10,
		RenderTimeout: 60 * time.Second,
		Width:         1792,
		Height:        1024,
		Python:        "python3",
	}

	if err := c.applyFile(filepath.Join(dataDir, "config.yaml")); err != nil {
		return nil, err
	}

	c.Provider = getEnv("FIGGEN_PROVIDER", c.Provider)
	c.VLMModel = getEnv("FIGGEN_VLM_MODEL", c.VLMModel)
	c.ImageModel = getEnv("FIGGEN_IMAGE_MODEL", c.ImageModel)
	c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	c.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")

	return c, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		// Overlay file is optional
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if fc.Provider != "" {
		c.Provider = fc.Provider
	}
	if fc.VLMModel != "" {
		c.VLMModel = fc.VLMModel
	}
	if fc.ImageModel != "" {
		c.ImageModel = fc.ImageModel
	}
	if fc.Iterations > 0 {
		c.Iterations = fc.Iterations
	}
	if fc.RetrievalCap > 0 {
		c.RetrievalCap = fc.RetrievalCap
	}
	if fc.RenderTimeoutSeconds > 0 {
		c.RenderTimeout = time.Duration(fc.RenderTimeoutSeconds) * time.Second
	}
	if fc.Width > 0 {
		c.Width = fc.Width
	}
	if fc.Height > 0 {
		c.Height = fc.Height
	}
	if fc.Python != "" {
		c.Python = fc.Python
	}

	return nil
}

func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(c.RunsDir(), 0755)
}

func (c *Config) RunsDir() string {
	return filepath.Join(c.DataDir, "runs")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
