// Package hash turns admission passwords into scheme-tagged hashes and
// verifies plaintexts against them. The stored string always identifies the
// scheme that produced it, so records hashed under different schemes can
// coexist and Verify dispatches correctly either way.
package hash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	SchemeArgon2id = "argon2id"
	SchemeSHA256   = "sha256"

	// fallbackSalt is the process-wide salt of the degraded sha256 scheme.
	// No per-secret salt — an explicitly weaker guarantee, kept only for
	// deployments where argon2 memory cost is unacceptable.
	fallbackSalt = "admission_salt_2024"
)

// Hasher produces a tagged hash for one selected scheme. Selection happens
// once at startup (Select); per-call probing is deliberately not supported.
type Hasher interface {
	Hash(plain string) (string, error)
	Scheme() string
}

// Select returns the hasher for the configured scheme name.
func Select(scheme string) (Hasher, error) {
	switch scheme {
	case SchemeArgon2id, "":
		return NewArgon2(), nil
	case SchemeSHA256:
		return SHA256{}, nil
	default:
		return nil, fmt.Errorf("unknown hash scheme %q", scheme)
	}
}

// Argon2 hashes with argon2id and renders PHC strings:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<b64 salt>$<b64 key>
type Argon2 struct {
	time    uint32
	memory  uint32
	threads uint8
	saltLen int
	keyLen  uint32
}

func NewArgon2() *Argon2 {
	return &Argon2{time: 3, memory: 64 * 1024, threads: 2, saltLen: 16, keyLen: 32}
}

func (a *Argon2) Scheme() string { return SchemeArgon2id }

func (a *Argon2) Hash(plain string) (string, error) {
	salt := make([]byte, a.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	key := argon2.IDKey([]byte(plain), salt, a.time, a.memory, a.threads, a.keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, a.memory, a.time, a.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// SHA256 is the fallback: a keyed digest with fallbackSalt, tagged "sha256$".
type SHA256 struct{}

func (SHA256) Scheme() string { return SchemeSHA256 }

func (SHA256) Hash(plain string) (string, error) {
	sum := sha256.Sum256([]byte(plain + fallbackSalt))
	return SchemeSHA256 + "$" + hex.EncodeToString(sum[:]), nil
}

// Verify reports whether plain matches the tagged hash, dispatching on the
// embedded scheme tag. Unknown tags verify false.
func Verify(plain, tagged string) bool {
	switch {
	case strings.HasPrefix(tagged, "$argon2id$"):
		return verifyArgon2(plain, tagged)
	case strings.HasPrefix(tagged, SchemeSHA256+"$"):
		sum := sha256.Sum256([]byte(plain + fallbackSalt))
		want, err := hex.DecodeString(strings.TrimPrefix(tagged, SchemeSHA256+"$"))
		if err != nil {
			return false
		}
		return subtle.ConstantTimeCompare(sum[:], want) == 1
	default:
		return false
	}
}

func verifyArgon2(plain, tagged string) bool {
	// $argon2id$v=19$m=...,t=...,p=...$salt$key
	parts := strings.Split(tagged, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var memory, timeCost uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(plain), salt, timeCost, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
