package commands

import (
	"errors"
	"time"

	"github.com/appetiteclub/dinein/internal/auth"
	"github.com/appetiteclub/dinein/internal/config"
)

// Token mints a bearer token signed with the configured secret.
func Token(cfg *config.Config, subject string, roles []string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}
	verifier := auth.NewVerifier(
		cfg.GetStringOrDef("auth.jwt.secret", ""),
		cfg.GetStringOrDef("auth.jwt.issuer", ""),
	)
	return verifier.Issue(subject, roles, ttl)
}
