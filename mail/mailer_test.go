package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationBody_SubstitutesPlaceholders(t *testing.T) {
	body := registrationBody("Regional Library", "Alice Smith", "alice", "p@ssw0rd")

	assert.Contains(t, body, "Alice Smith")
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "p@ssw0rd")
	assert.Contains(t, body, "Regional Library")
}

func TestBuildMIME(t *testing.T) {
	msg := buildMIME("Library", "noreply@example.com", "alice@example.com", "Welcome", "<p>hi</p>")

	headers, body, found := strings.Cut(msg, "\r\n\r\n")
	assert.True(t, found)
	assert.Contains(t, headers, "From: Library <noreply@example.com>")
	assert.Contains(t, headers, "To: alice@example.com")
	assert.Contains(t, headers, "Subject: Welcome")
	assert.Contains(t, headers, "Content-Type: text/html; charset=UTF-8")
	assert.Equal(t, "<p>hi</p>", body)
}

func TestSendRegistration_DevModeWithoutSMTP(t *testing.T) {
	m := NewSMTPMailer(Config{}) // no host configured

	err := m.SendRegistration("alice@example.com", "Alice", "alice", "pw")
	assert.NoError(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "587", cfg.Port)
	assert.NotEmpty(t, cfg.AppName)
}
