// Package session реализует клиентскую сессию: текущий пользователь и
// bearer-токен, с сохранением в долговременное локальное хранилище.
//
// Хранилище — аналог localStorage браузерного оригинала: два значения под
// фиксированными ключами. Токен и пользователь пишутся и удаляются только
// вместе, чтобы не получить рассогласованную сессию.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Имена файлов в каталоге состояния.
const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Storage описывает долговременное хранилище сессии.
//
// Load возвращает пустые значения, если сессия не сохранена.
type Storage interface {
	Save(token string, user []byte) error
	Load() (token string, user []byte, err error)
	Clear() error
}

// FileStorage хранит сессию в двух файлах внутри каталога состояния.
type FileStorage struct {
	dir string
}

// NewFileStorage создаёт хранилище в каталоге dir, создавая его при необходимости.
func NewFileStorage(dir string) (*FileStorage, error) {
	const op = "session.NewFileStorage"

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &FileStorage{dir: dir}, nil
}

// Save записывает токен и пользователя. При ошибке записи любого из двух
// значений хранилище очищается целиком: либо оба значения, либо ни одного.
func (s *FileStorage) Save(token string, user []byte) error {
	const op = "session.FileStorage.Save"

	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		_ = s.Clear()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), user, 0o600); err != nil {
		_ = s.Clear()
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Load читает сохранённую сессию. Отсутствие любого из файлов означает
// отсутствие сессии и не является ошибкой.
func (s *FileStorage) Load() (string, []byte, error) {
	const op = "session.FileStorage.Load"

	token, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return string(token), user, nil
}

// Clear удаляет оба значения. Отсутствие файлов не считается ошибкой.
func (s *FileStorage) Clear() error {
	const op = "session.FileStorage.Clear"

	var firstErr error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", op, err)
			}
		}
	}
	return firstErr
}
