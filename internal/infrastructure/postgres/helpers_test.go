package postgres

import "github.com/ec5/ec5-api/internal/config"

func configFixture() config.DatabaseConfig {
	return config.DatabaseConfig{Host: "db", Port: 5432, User: "ec5", Password: "secret", Name: "ec5", SSLMode: "require"}
}
