package commands

import (
	"testing"
	"time"

	"github.com/appetiteclub/dinein/internal/auth"
	"github.com/appetiteclub/dinein/internal/config"
)

func TestToken(t *testing.T) {
	cfg := config.New(map[string]any{"auth.jwt.secret": "s3cret", "auth.jwt.issuer": "dinein"})

	token, err := Token(cfg, "user-1", []string{"chef"}, time.Hour)
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	claims, err := auth.NewVerifier("s3cret", "dinein").Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "chef" {
		t.Errorf("roles = %v, want [chef]", claims.Roles)
	}
}

func TestTokenErrors(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		subject string
	}{
		{name: "missingSubject", secret: "s3cret", subject: ""},
		{name: "missingSecret", secret: "", subject: "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(map[string]any{"auth.jwt.secret": tt.secret})
			if _, err := Token(cfg, tt.subject, nil, time.Hour); err == nil {
				t.Error("Token() error = nil, want error")
			}
		})
	}
}
