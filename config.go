package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gamma-omg/bizbot-brain/providers"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogFile           string `yaml:"log"`
	DocRoot           string `yaml:"doc_root"`
	MergeEventsMs     int    `yaml:"write_debounce_ms"`
	VectorizeFloorMs  int    `yaml:"vectorize_floor_ms"`
	ServerAddr        string `yaml:"server_addr"`
	Provider          string `yaml:"provider"`
	Model             string `yaml:"model"`
	SystemInstruction string `yaml:"system_instruction"`
	Keys              struct {
		Gemini     string `yaml:"gemini"`
		OpenAI     string `yaml:"open_ai"`
		OpenRouter string `yaml:"open_router"`
	} `yaml:"keys"`
}

func readConfig(cfgPath string) (*Config, error) {
	cfgFile, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file: %w", err)
	}
	defer cfgFile.Close()

	cfg := &Config{}
	dec := yaml.NewDecoder(cfgFile)
	err = dec.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogFile == "" {
		cfg.LogFile = "bizbot.log"
	}
	if cfg.MergeEventsMs == 0 {
		cfg.MergeEventsMs = 500
	}
	if cfg.VectorizeFloorMs == 0 {
		cfg.VectorizeFloorMs = 800
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = "localhost:8080"
	}
	if cfg.Provider == "" {
		cfg.Provider = string(providers.Gemini)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
}

func (c *Config) credentials() providers.Credentials {
	return providers.Credentials{
		providers.Gemini:     c.Keys.Gemini,
		providers.OpenAI:     c.Keys.OpenAI,
		providers.OpenRouter: c.Keys.OpenRouter,
	}
}

func (c *Config) vectorizeFloor() time.Duration {
	return time.Duration(c.VectorizeFloorMs) * time.Millisecond
}

func (c *Config) mergeEventsDelay() time.Duration {
	return time.Duration(c.MergeEventsMs) * time.Millisecond
}
