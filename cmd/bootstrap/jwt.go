package bootstrap

import (
	"time"

	"tutorin/internal/pkg/config"
	"tutorin/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	tokenDuration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		panic("invalid JWT_DURATION: " + err.Error())
	}
	return jwt.NewService(cfg.JWT.Secret, tokenDuration)
}
