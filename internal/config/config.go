package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort         = "8080"
	defaultModelPath    = "models/soil_classifier.onnx"
	defaultMetadataPath = "models/model_metadata.json"
	defaultDatasetPath  = "dataset/4-soils-dataset-new.csv"
	defaultImagesDir    = "images"
	defaultLogLevel     = "info"
	defaultPreviewRows  = 2907
	defaultImageWidth   = 250
)

type Config struct {
	Port         string `yaml:"port"`
	ReleaseMode  bool   `yaml:"release_mode"`
	LogLevel     string `yaml:"log_level"`
	ModelPath    string `yaml:"model_path"`
	MetadataPath string `yaml:"model_metadata_path"`

	// Empty means let onnxruntime_go pick its platform default.
	OnnxLibraryPath string `yaml:"onnxruntime_library_path"`
	DatasetPath     string `yaml:"dataset_path"`
	ImagesDir       string `yaml:"images_dir"`
	PreviewRows     int    `yaml:"preview_rows"`
	ImageWidth      int    `yaml:"image_width"`
}

// LoadConfig reads config.yaml (or CONFIG_PATH) when present, then applies
// environment overrides and defaults.
func LoadConfig() (Config, error) {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("error parsing %s: %w", configPath, err)
		}
		log.Infof("[Config] Loaded config from %s", configPath)
	case os.IsNotExist(err):
		log.Debugf("[Config] %s not found, using environment and defaults", configPath)
	default:
		return Config{}, fmt.Errorf("error reading %s: %w", configPath, err)
	}

	envOverride(&cfg.Port, "PORT")
	envOverrideBool(&cfg.ReleaseMode, "RELEASE_MODE")
	envOverride(&cfg.LogLevel, "LOG_LEVEL")
	envOverride(&cfg.ModelPath, "MODEL_PATH")
	envOverride(&cfg.MetadataPath, "MODEL_METADATA_PATH")
	envOverride(&cfg.OnnxLibraryPath, "ONNXRUNTIME_LIB")
	envOverride(&cfg.DatasetPath, "DATASET_PATH")
	envOverride(&cfg.ImagesDir, "IMAGES_DIR")
	envOverrideInt(&cfg.PreviewRows, "PREVIEW_ROWS")
	envOverrideInt(&cfg.ImageWidth, "IMAGE_WIDTH")

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = defaultPort
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.ModelPath == "" {
		c.ModelPath = defaultModelPath
	}
	if c.MetadataPath == "" {
		c.MetadataPath = defaultMetadataPath
	}
	if c.DatasetPath == "" {
		c.DatasetPath = defaultDatasetPath
	}
	if c.ImagesDir == "" {
		c.ImagesDir = defaultImagesDir
	}
	if c.PreviewRows <= 0 {
		c.PreviewRows = defaultPreviewRows
	}
	if c.ImageWidth <= 0 {
		c.ImageWidth = defaultImageWidth
	}
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		log.Warnf("[Config] Invalid log level %q, using info", c.LogLevel)
		return log.InfoLevel
	}
	return lvl
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Warnf("[Config] Invalid %s=%q: %v", key, v, err)
		return
	}
	*dst = n
}

func envOverrideBool(dst *bool, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		log.Warnf("[Config] Invalid %s=%q: %v", key, v, err)
		return
	}
	*dst = b
}
