// Package assets lays production material out on a filesystem as
// root/location/date/type/batch-N.
package assets

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/spf13/afero"
)

// Store implements AssetStore on any afero filesystem.
type Store struct {
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: path.Clean(root)}
}

// NewOsStore is a Store on the local disk.
func NewOsStore(root string) *Store {
	return NewStore(afero.NewOsFs(), root)
}

// EnsureFolder creates the batch folder and returns its path. It is idempotent.
func (s *Store) EnsureFolder(ctx context.Context, folder ports.AssetFolder) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := s.dir(folder)
	if err != nil {
		return "", err
	}
	if err = s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create asset folder %s: %w", dir, err)
	}
	return dir, nil
}

// Put writes data to name inside the folder, replacing an existing file.
func (s *Store) Put(ctx context.Context, folder ports.AssetFolder, name string, data []byte) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errs.NewValueIsInvalidError("asset name " + name)
	}
	dir, err := s.EnsureFolder(ctx, folder)
	if err != nil {
		return err
	}

	target := path.Join(dir, name)
	tmp := target + ".part"
	if err = afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write asset %s: %w", target, err)
	}
	if err = s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("move asset %s: %w", target, err)
	}
	return nil
}

func (s *Store) dir(folder ports.AssetFolder) (string, error) {
	location := strings.TrimSpace(folder.Location)
	if location == "" || strings.ContainsAny(location, `/\`) || strings.HasPrefix(location, ".") {
		return "", errs.NewValueIsInvalidError("asset folder location " + folder.Location)
	}
	if err := folder.DeliveryDate.Validate(); err != nil {
		return "", err
	}
	if err := folder.DeliveryType.Validate(); err != nil {
		return "", err
	}
	if folder.Batch < 1 {
		return "", errs.NewValueIsOutOfRangeError("batch", folder.Batch, 1, "unbounded")
	}
	return path.Join(
		s.root,
		location,
		folder.DeliveryDate.String(),
		folder.DeliveryType.String(),
		fmt.Sprintf("batch-%d", folder.Batch),
	), nil
}

// Exists reports whether name was stored in the folder.
func (s *Store) Exists(folder ports.AssetFolder, name string) (bool, error) {
	dir, err := s.dir(folder)
	if err != nil {
		return false, err
	}
	_, err = s.fs.Stat(path.Join(dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}
