package middleware

import "bookstore-management/internal/config"

func corsConfig(origins []string) *config.CORSConfig {
	return &config.CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:         600,
	}
}
