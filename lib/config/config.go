package config

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"

	"github.com/pkuiper/glquad/lib/utils"
)

type Config struct {
	Window         *WindowCfg  `yaml:"window"`
	Texture        *TextureCfg `yaml:"texture"`
	ClearColour    string      `yaml:"clear_colour"`
	FallbackColour string      `yaml:"fallback_colour"`
	Api            *ApiCfg     `yaml:"api"`
}

type WindowCfg struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

type TextureCfg struct {
	Path    string `yaml:"path"`
	MaxSize int    `yaml:"max_size"`
}

type ApiCfg struct {
	Bind           string `yaml:"bind"`
	EnableProfiler bool   `yaml:"enable_profiler"`
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %s", filename, err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			_ = fmt.Errorf("could not close %s: %s", filename, err)
		}
	}(f)

	m := yaml.NewDecoder(f)
	cfg := &Config{}
	err = m.Decode(cfg)
	if err != nil {
		return nil, err
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, err
}

func (c *Config) Validate() error {
	if c.Window == nil {
		c.Window = &WindowCfg{}
	}
	if err := c.Window.Validate(); err != nil {
		return fmt.Errorf("window config is invalid: %w", err)
	}

	if c.Texture == nil {
		c.Texture = &TextureCfg{}
	}
	if err := c.Texture.Validate(); err != nil {
		return fmt.Errorf("texture config is invalid: %w", err)
	}

	if c.ClearColour == "" {
		c.ClearColour = "#000000ff"
	}
	if !utils.ColourValidate(c.ClearColour) {
		return fmt.Errorf("%s is not a valid clear colour", c.ClearColour)
	}
	if c.FallbackColour == "" {
		c.FallbackColour = "#ff00ffff"
	}
	if !utils.ColourValidate(c.FallbackColour) {
		return fmt.Errorf("%s is not a valid fallback colour", c.FallbackColour)
	}
	return nil
}

func (w *WindowCfg) Validate() error {
	if w.Title == "" {
		w.Title = "glquad"
	}
	if w.Width == 0 {
		w.Width = 1280
	}
	if w.Height == 0 {
		w.Height = 720
	}
	if w.Width < 0 || w.Height < 0 {
		return fmt.Errorf("window size %dx%d is not positive", w.Width, w.Height)
	}
	return nil
}

func (t *TextureCfg) Validate() error {
	if t.MaxSize == 0 {
		t.MaxSize = 2048
	}
	if t.MaxSize < 1 {
		return fmt.Errorf("texture max_size %d is not positive", t.MaxSize)
	}
	if t.Path != "" {
		if _, err := os.Stat(t.Path); err != nil {
			return fmt.Errorf("texture path is unusable: %w", err)
		}
	}
	return nil
}
