package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-crm/internal/config"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

type Config struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Secret:     cfg.JWTSecret,
		TokenTTL:   cfg.JWTTTL,
		BcryptCost: cfg.BcryptCost,
	}
}

func (c Config) ttl() time.Duration {
	if c.TokenTTL <= 0 {
		return DefaultTokenTTL
	}
	return c.TokenTTL
}

func (c Config) cost() int {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return c.BcryptCost
}
