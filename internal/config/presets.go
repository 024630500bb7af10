package config

import (
	"fmt"
	"strings"
)

// Preset is a named pair of built-in templates.
type Preset struct {
	Name               string
	Description        string
	FilenameTemplate   string
	FoldernameTemplate string
}

var presets = []Preset{
	{
		Name:               "simple",
		Description:        "Sampler and steps, grouped by checkpoint",
		FilenameTemplate:   "sampler_name, steps",
		FoldernameTemplate: "ckpt_name",
	},
	{
		Name:               "detailed",
		Description:        "Full sampler settings with a timestamp",
		FilenameTemplate:   "sampler_name, cfg, steps, %Y-%m-%d_%H-%M-%S",
		FoldernameTemplate: "ckpt_name, ./sampler_name",
	},
	{
		Name:               "organized",
		Description:        "Date folders, checkpoint subfolders",
		FilenameTemplate:   "ckpt_name, sampler_name, cfg, steps",
		FoldernameTemplate: "%Y-%m-%d, ./ckpt_name",
	},
	{
		Name:               "minimal",
		Description:        "Timestamp only, flat output",
		FilenameTemplate:   "%Y%m%d_%H%M%S",
		FoldernameTemplate: "",
	},
}

// Presets returns the built-in presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByName looks up a built-in preset.
func PresetByName(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetNames returns the preset names in display order.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// ApplyPreset overlays a built-in preset's templates on the config.
func (c *Config) ApplyPreset(name string) error {
	p, ok := PresetByName(name)
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	c.FilenameTemplate = p.FilenameTemplate
	c.FoldernameTemplate = p.FoldernameTemplate
	return nil
}
