// Package blob stores applicant photos and hands back opaque keys. The rest
// of the system never interprets file contents or key structure.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Store interface {
	// Save persists the photo bytes for an application and returns the
	// stored key.
	Save(ctx context.Context, applicationID uint64, r io.Reader, suggestedName string) (string, error)
	// Remove deletes a previously saved key. Removing an absent key is not
	// an error.
	Remove(ctx context.Context, key string) error
}

// Local writes photos under a root directory on the local filesystem as
// <id>_<name> and returns that relative key.
type Local struct{ root string }

func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", root, err)
	}
	return &Local{root: root}, nil
}

func (l *Local) Save(ctx context.Context, applicationID uint64, r io.Reader, suggestedName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := fmt.Sprintf("%d_%s", applicationID, sanitizeName(suggestedName))
	f, err := os.Create(filepath.Join(l.root, key))
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return key, nil
}

func (l *Local) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// re-sanitize so a stored key can never climb out of the root
	key = filepath.Base(key)
	if err := os.Remove(filepath.Join(l.root, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove photo file: %w", err)
	}
	return nil
}

// sanitizeName strips path components and anything outside a conservative
// filename alphabet.
func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "photo"
	}
	return out
}
