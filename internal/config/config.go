package config

import (
	"time"
)

type Config struct {
	Timezone string        `yaml:"timezone"`
	File     FileConfig    `yaml:"file"`
	Launchd  LaunchdConfig `yaml:"launchd"`
}

type FileConfig struct {
	Path string `yaml:"path"`
}

type LaunchdConfig struct {
	AgentsDir     string  `yaml:"agents_dir"`
	LogDir        string  `yaml:"log_dir"`
	LabelPrefix   string  `yaml:"label_prefix"`
	RollbackRatio float64 `yaml:"rollback_ratio"` // 0 = use the built-in default
}

func (c *Config) GetLocation() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) MustLocation() *time.Location {
	loc, err := c.GetLocation()

	if err != nil {
		panic(err)
	}
	return loc
}
