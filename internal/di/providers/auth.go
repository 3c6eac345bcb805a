package providers

import (
	"encoding/hex"

	"github.com/samber/do/v2"

	"github.com/arohamusic/encore-server/internal/auth"
	"github.com/arohamusic/encore-server/internal/config"
	"github.com/arohamusic/encore-server/internal/logger"
	"github.com/arohamusic/encore-server/internal/service"
	"github.com/arohamusic/encore-server/internal/validation"
)

// AuthKey wraps the authentication key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the token signing key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}

	// Update config with the loaded key
	cfg.Auth.TokenKey = key

	log.Info("Authentication key loaded",
		"token_duration", cfg.Auth.TokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	keyHex := hex.EncodeToString([]byte(authKey))
	return auth.NewTokenService(keyHex, cfg.Auth.TokenDuration)
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideAuthService provides the operator authentication service.
// The configured plaintext operator password is hashed once at boot and
// never kept around.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	v := do.MustInvoke[*validation.Validator](i)

	passwordHash, err := auth.HashPassword(cfg.Auth.OperatorPassword)
	if err != nil {
		return nil, err
	}
	cfg.Auth.OperatorPassword = ""

	return service.NewAuthService(cfg.Auth.OperatorUsername, passwordHash, tokenService, v, log.Logger), nil
}
