package config

import (
	"fmt"
	"time"
	"worldgdp/internal/gdp"
	"worldgdp/lib/configutil"
	configlibsql "worldgdp/lib/configutil/libsql"
)

// File is the optional configuration file, merged over Default when present.
const File = "gdp-etl.json5"

const (
	DefaultURL       = "https://web.archive.org/web/20230902185326/https://en.wikipedia.org/wiki/List_of_countries_by_GDP_%28nominal%29"
	DefaultCSVPath   = "Countries_by_GDP.csv"
	DefaultDatabase  = "World_Economies.db"
	DefaultLogPath   = "etl_project_log.txt"
	DefaultTableName = "Countries_by_GDP"
	DefaultThreshold = 100
)

type FetchConfig struct {
	TimeoutSeconds int    `json:"timeout_seconds"`
	UserAgent      string `json:"user_agent"`
	// DumpDir, when set, receives a copy of every http exchange.
	DumpDir string `json:"dump_dir"`
}

func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// Config is everything a run needs, it is read once at startup and never
// changed afterwards.
type Config struct {
	Url        string              `json:"url"`
	CsvPath    string              `json:"csv_path"`
	Database   configlibsql.Struct `json:"database"`
	LogPath    string              `json:"log_path"`
	TableName  string              `json:"table_name"`
	Attributes []string            `json:"attributes"`
	// Threshold is the minimum GDP in billions selected by the final query.
	Threshold float64     `json:"threshold"`
	Fetch     FetchConfig `json:"fetch"`
}

func Default() Config {
	return Config{
		Url:        DefaultURL,
		CsvPath:    DefaultCSVPath,
		Database:   configlibsql.Struct{File: DefaultDatabase},
		LogPath:    DefaultLogPath,
		TableName:  DefaultTableName,
		Attributes: []string{gdp.CountryColumn, gdp.MillionsColumn},
		Threshold:  DefaultThreshold,
	}
}

// Load returns Default with the file at path (and its .local variant) merged
// over it. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := configutil.Overlay(Default(), path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Url == "" {
		return fmt.Errorf("config: url is empty")
	}
	if c.CsvPath == "" {
		return fmt.Errorf("config: csv_path is empty")
	}
	if c.LogPath == "" {
		return fmt.Errorf("config: log_path is empty")
	}
	if c.TableName == "" {
		return fmt.Errorf("config: table_name is empty")
	}
	if c.Database.File == "" && c.Database.Url == "" {
		return fmt.Errorf("config: database needs a file or a url")
	}
	if len(c.Attributes) != 2 {
		return fmt.Errorf("config: expected 2 attributes, got %d", len(c.Attributes))
	}
	if c.Attributes[0] == "" {
		return fmt.Errorf("config: the name attribute is empty")
	}
	// the transformer only knows how to rescale this column
	if c.Attributes[1] != gdp.MillionsColumn {
		return fmt.Errorf("config: the value attribute must be %q, got %q", gdp.MillionsColumn, c.Attributes[1])
	}
	if c.Fetch.TimeoutSeconds < 0 {
		return fmt.Errorf("config: fetch.timeout_seconds is negative")
	}
	return nil
}

// Columns returns the schema handed to the extractor.
func (c Config) Columns() [2]string {
	return [2]string{c.Attributes[0], c.Attributes[1]}
}
