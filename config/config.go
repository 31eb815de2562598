package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TMDBAPIKey          string
	SpotifyClientID     string
	SpotifyClientSecret string

	Port         string
	PublicDir    string
	TemplatesDir string

	TMDBBaseURL     string
	TVMazeBaseURL   string
	SpotifyBaseURL  string
	SpotifyTokenURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		TMDBAPIKey:          getEnv("TMDB_API_KEY", ""),
		SpotifyClientID:     getEnv("CLIENT_ID_SPOTIFY", ""),
		SpotifyClientSecret: getEnv("CLIENT_SECRET_SPOTIFY", ""),
		Port:                getEnv("PORT", "3001"),
		PublicDir:           getEnv("PUBLIC_DIR", "public"),
		TemplatesDir:        getEnv("TEMPLATES_DIR", "templates"),
		TMDBBaseURL:         getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TVMazeBaseURL:       getEnv("TVMAZE_BASE_URL", "https://api.tvmaze.com"),
		SpotifyBaseURL:      getEnv("SPOTIFY_BASE_URL", "https://api.spotify.com/v1"),
		SpotifyTokenURL:     getEnv("SPOTIFY_TOKEN_URL", "https://accounts.spotify.com/api/token"),
	}

	if cfg.TMDBAPIKey == "" {
		log.Fatal("TMDB_API_KEY is required")
	}

	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		log.Fatal("Spotify credentials are not set in the environment variables")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
