// Package proof принимает и сохраняет скриншоты, подтверждающие выполнение заказа.
package proof

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/mmeshcher/boostmarket/internal/errs"
)

// RefPrefix префикс ссылок на сохранённые пруфы.
const RefPrefix = "proofs"

var allowed = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// Store сохраняет пруфы в каталог на диске.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore создаёт хранилище и при необходимости каталог.
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("proof max bytes must be positive, got %d", maxBytes)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create proof dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// MaxBytes возвращает допустимый размер файла.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Save проверяет размер и тип содержимого и сохраняет файл под случайным именем.
// Возвращает ссылку вида proofs/<uuid><ext>.
func (s *Store) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read proof: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: proof file is empty", errs.ErrValidation)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: proof file exceeds %d bytes", errs.ErrValidation, s.maxBytes)
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowed...) {
		return "", fmt.Errorf("%w: unsupported proof type %s", errs.ErrValidation, mtype.String())
	}

	name := uuid.NewString() + mtype.Extension()
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create proof file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("write proof file: %w", err)
	}

	return path.Join(RefPrefix, name), nil
}

// Remove удаляет ранее сохранённый пруф. Отсутствующий файл не считается ошибкой.
func (s *Store) Remove(ref string) error {
	name, ok := strings.CutPrefix(ref, RefPrefix+"/")
	if !ok || name == "" || name != filepath.Base(name) || name == ".." {
		return fmt.Errorf("%w: invalid proof reference %q", errs.ErrValidation, ref)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove proof file: %w", err)
	}
	return nil
}
