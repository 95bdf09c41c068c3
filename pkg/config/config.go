// Package config provides configuration loading and management.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/clipshift/pkg/adapters/pigodetect"
	"github.com/user/clipshift/pkg/compositor"
	"github.com/user/clipshift/pkg/overlay"
	"github.com/user/clipshift/pkg/pipeline"
)

// Config represents the full configuration for clipshift.
type Config struct {
	// Output geometry
	OutputWidth     int     `yaml:"output_width"`
	OutputHeight    int     `yaml:"output_height"`
	FacePanelRatio  float64 `yaml:"face_panel_ratio"`
	ClearPanelRatio float64 `yaml:"clear_panel_ratio"`
	BlurBarRatio    float64 `yaml:"blur_bar_ratio"`
	BlurSigma       float64 `yaml:"blur_sigma"`

	// Detection
	CascadePath string  `yaml:"cascade_path"`
	MinQuality  float32 `yaml:"min_quality"`
	PadFactor   float64 `yaml:"pad_factor"`

	// Encoding
	CRF          int    `yaml:"crf"`
	Preset       string `yaml:"preset"`
	AudioBitrate string `yaml:"audio_bitrate"`
	FFmpegPath   string `yaml:"ffmpeg_path"`
	FFprobePath  string `yaml:"ffprobe_path"`

	// Branding
	FontPath string  `yaml:"font_path"`
	FontSize float64 `yaml:"font_size"`
	LogoPath string  `yaml:"logo_path"`
	Margin   int     `yaml:"margin"`

	// Logging
	LogLevel         string `yaml:"log_level"`
	ProgressInterval int    `yaml:"progress_interval"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	layout := compositor.DefaultLayout()
	return Config{
		// Output geometry
		OutputWidth:     layout.OutputWidth,
		OutputHeight:    layout.OutputHeight,
		FacePanelRatio:  layout.FacePanelRatio,
		ClearPanelRatio: layout.ClearPanelRatio,
		BlurBarRatio:    layout.BlurBarRatio,
		BlurSigma:       layout.BlurSigma,

		// Detection
		MinQuality: pigodetect.DefaultMinQuality,
		PadFactor:  pigodetect.DefaultPadFactor,

		// Encoding
		CRF:          23,
		Preset:       "medium",
		AudioBitrate: "192k",

		// Logging
		LogLevel:         "info",
		ProgressInterval: 100,

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToLayout converts Config to compositor.Layout.
func (c Config) ToLayout() compositor.Layout {
	return compositor.Layout{
		OutputWidth:     c.OutputWidth,
		OutputHeight:    c.OutputHeight,
		FacePanelRatio:  c.FacePanelRatio,
		ClearPanelRatio: c.ClearPanelRatio,
		BlurBarRatio:    c.BlurBarRatio,
		BlurSigma:       c.BlurSigma,
	}
}

// ToPipelineConfig converts Config to pipeline.Config.
func (c Config) ToPipelineConfig() pipeline.Config {
	return pipeline.Config{
		Layout:           c.ToLayout(),
		CRF:              c.CRF,
		Preset:           c.Preset,
		AudioBitrate:     c.AudioBitrate,
		ProgressInterval: c.ProgressInterval,
	}
}

// ToDetectorOptions converts Config to pigodetect.Options.
func (c Config) ToDetectorOptions() pigodetect.Options {
	return pigodetect.Options{
		CascadePath: c.CascadePath,
		MinQuality:  c.MinQuality,
		PadFactor:   c.PadFactor,
	}
}

// ToOverlayOptions converts Config to overlay.Options for the given
// clip label.
func (c Config) ToOverlayOptions(label string) overlay.Options {
	return overlay.Options{
		Label:    label,
		FontPath: c.FontPath,
		FontSize: c.FontSize,
		LogoPath: c.LogoPath,
		Margin:   c.Margin,
	}
}
