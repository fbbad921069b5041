package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Convert   ConvertConfig   `yaml:"convert" mapstructure:"convert"`
	URIs      URIConfig       `yaml:"uris" mapstructure:"uris"`
	Resources ResourcesConfig `yaml:"resources" mapstructure:"resources"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ConvertConfig configures the conversion run.
type ConvertConfig struct {
	Source         string `yaml:"source" mapstructure:"source"`
	Dest           string `yaml:"dest" mapstructure:"dest"`
	Format         string `yaml:"format" mapstructure:"format"`
	Workers        int    `yaml:"workers" mapstructure:"workers"`
	SkipBadRecords bool   `yaml:"skip_bad_records" mapstructure:"skip_bad_records"`
}

// URIConfig holds the identifier scheme: the project base URI, the parent
// dataset record, and the fixed classification code set.
type URIConfig struct {
	Base         string `yaml:"base" mapstructure:"base"`
	Dataset      string `yaml:"dataset" mapstructure:"dataset"`
	DatasetTitle string `yaml:"dataset_title" mapstructure:"dataset_title"`
	CodeSet      string `yaml:"code_set" mapstructure:"code_set"`
	CodeSetName  string `yaml:"code_set_name" mapstructure:"code_set_name"`
}

// ResourcesConfig points at the external reference tables.
type ResourcesConfig struct {
	Occupations    string `yaml:"occupations" mapstructure:"occupations"`
	Neighbourhoods string `yaml:"neighbourhoods" mapstructure:"neighbourhoods"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REGISTERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("convert.source", "data/")
	v.SetDefault("convert.dest", "trig/")
	v.SetDefault("convert.format", "trig")
	v.SetDefault("convert.workers", 2)
	v.SetDefault("convert.skip_bad_records", false)
	v.SetDefault("uris.base", "https://data.create.humanities.uva.nl/datasets/bevolkingsregisters/")
	v.SetDefault("uris.dataset", "https://data.create.humanities.uva.nl/datasets/bevolkingsregisters")
	v.SetDefault("uris.dataset_title", "Archief van het Bevolkingsregister")
	v.SetDefault("uris.code_set", "https://iisg.amsterdam/resource/hisco/HISCO")
	v.SetDefault("uris.code_set_name", "HISCO")
	v.SetDefault("resources.occupations", "resources/occupations2hisco.json")
	v.SetDefault("resources.neighbourhoods", "resources/adamlink_neighbourhoods.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
