package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Token             string
	PlayerAPIURL      string
	PlayerAPIPassword string
	GuildAPIURL       string
	GuildAPIToken     string
	UpdateInterval    time.Duration
	StatePath         string
	MapImagePath      string
	MapName           string
	IconDir           string
	OutputSize        int
	MetricsAddr       string

	// World→map calibration: fixed translation offsets plus one scale,
	// fit once from known world↔map coordinate pairs.
	WorldOffsetX float64
	WorldOffsetY float64
	WorldScale   float64

	// Map→pixel calibration: independent per-axis linear map fit against
	// the reference map image's native resolution.
	PixelScaleX  float64
	PixelOffsetX float64
	PixelScaleY  float64
	PixelOffsetY float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	token := readSecret("discord_token")
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set (via secret or env var)")
	}

	playerPassword := readSecret("player_api_password")
	if playerPassword == "" {
		playerPassword = os.Getenv("PLAYER_API_PASSWORD")
	}

	guildToken := readSecret("guild_api_token")
	if guildToken == "" {
		guildToken = os.Getenv("GUILD_API_TOKEN")
	}

	cfg := &Config{
		Token:             token,
		PlayerAPIURL:      envString("PLAYER_API_URL", ""),
		PlayerAPIPassword: playerPassword,
		GuildAPIURL:       envString("GUILD_API_URL", ""),
		GuildAPIToken:     guildToken,
		UpdateInterval:    envDuration("UPDATE_INTERVAL", 5*time.Minute),
		StatePath:         envString("STATE_PATH", "data/state.db"),
		MapImagePath:      envString("MAP_IMAGE_PATH", "assets/map.jpg"),
		MapName:           envString("MAP_NAME", "world map"),
		IconDir:           envString("ICON_DIR", "assets/icons"),
		OutputSize:        envInt("OUTPUT_SIZE", 2048),
		MetricsAddr:       envString("METRICS_ADDR", ":2112"),
		WorldOffsetX:      envFloat("WORLD_OFFSET_X", 1000),
		WorldOffsetY:      envFloat("WORLD_OFFSET_Y", -5000),
		WorldScale:        envFloat("WORLD_SCALE", 2.5),
		PixelScaleX:       envFloat("MAP_PIXEL_SCALE_X", 0.5),
		PixelOffsetX:      envFloat("MAP_PIXEL_OFFSET_X", 100),
		PixelScaleY:       envFloat("MAP_PIXEL_SCALE_Y", -0.5),
		PixelOffsetY:      envFloat("MAP_PIXEL_OFFSET_Y", 3996),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
