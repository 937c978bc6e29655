package config

import (
	"log"
	"os"
	"strconv"

	"whackamole/game"

	"github.com/joho/godotenv"
)

// Config is everything the process needs at boot. Env vars override the
// defaults; a .env file is read when present.
type Config struct {
	Addr string
	Game game.Config
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	return Config{
		Addr: ":" + envString("PORT", "8080"),
		Game: game.Config{
			DurationMs: envInt64("GAME_DURATION_MS", game.DefaultDurationMs),
			Moles:      int(envInt64("GAME_MOLES", game.DefaultMoles)),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
