package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
)

// ErrInvalidHash is returned when a stored hash is not in the expected encoding.
var ErrInvalidHash = errors.New("invalid password hash encoding")

// PasswordConfig holds the parameters for the Argon2id password hashing algorithm
type PasswordConfig struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultPasswordConfig returns the default configuration for password hashing
func DefaultPasswordConfig() *PasswordConfig {
	return &PasswordConfig{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// ConfigFromAppConfig creates a password config from the application config
func ConfigFromAppConfig(cfg *config.AppConfig) *PasswordConfig {
	return &PasswordConfig{
		Memory:      cfg.PasswordHash.Memory,
		Iterations:  cfg.PasswordHash.Iterations,
		Parallelism: cfg.PasswordHash.Parallelism,
		SaltLength:  cfg.PasswordHash.SaltLength,
		KeyLength:   cfg.PasswordHash.KeyLength,
	}
}

// HashPassword hashes password with Argon2id and a fresh random salt.
// The returned hash has the form $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<key>
// so it stays verifiable after the configured parameters change.
func HashPassword(password string, cfg *PasswordConfig) (string, string, error) {
	salt, err := GenerateRandomBytes(cfg.SaltLength)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, cfg.Iterations, cfg.Memory, cfg.Parallelism, cfg.KeyLength)

	encodedHash := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s",
		argon2.Version,
		cfg.Memory,
		cfg.Iterations,
		cfg.Parallelism,
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encodedHash, base64.RawStdEncoding.EncodeToString(salt), nil
}

// VerifyPassword compares a password with a hash and salt produced by HashPassword
func VerifyPassword(password, encodedHash, encodedSalt string) (bool, error) {
	params, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(encodedSalt)
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}

	comparisonKey := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, uint32(len(key)))

	// constant time
	return subtle.ConstantTimeCompare(key, comparisonKey) == 1, nil
}

func decodeHash(encodedHash string) (*PasswordConfig, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 5 || parts[1] != "argon2id" {
		return nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, ErrInvalidHash
	}
	if version != argon2.Version {
		return nil, nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrInvalidHash, version)
	}

	params := &PasswordConfig{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return nil, nil, ErrInvalidHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(key) == 0 {
		return nil, nil, ErrInvalidHash
	}

	return params, key, nil
}

// GenerateRandomBytes generates cryptographically secure random bytes
func GenerateRandomBytes(length uint32) ([]byte, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
