package bootstrap

import (
	"courtbook/internal/pkg/config"
	"courtbook/internal/pkg/token"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewTokenVerifier,
	),
)

func NewTokenVerifier(cfg config.Config) *token.Verifier {
	return token.NewVerifier(cfg.JWT.Secret)
}
