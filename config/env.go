package config

import (
	"os"
	"strconv"
)

// Environment overrides, applied after the file and before flags
const (
	EnvPreset    = "TITANIUM_PRESET"
	EnvTowerHP   = "TITANIUM_TOWER_HP"
	EnvLaneClash = "TITANIUM_LANE_CLASH"
	EnvSpectate  = "TITANIUM_SPECTATE"
)

// PresetFromEnv returns the preset named by the environment, if any
func PresetFromEnv() string {
	return os.Getenv(EnvPreset)
}

// ApplyEnv overlays individual environment overrides onto c
// Unset or unparsable variables leave the value unchanged
func (c *Config) ApplyEnv() {
	if val := getEnvInt(EnvTowerHP); val > 0 {
		c.Battle.TowerHP = val
	}
	if val, ok := getEnvBool(EnvLaneClash); ok {
		c.Battle.LaneClash = val
	}
	if val := os.Getenv(EnvSpectate); val != "" {
		c.Spectate = val
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}
	return b, true
}
