package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// store.go - общий слой JSON-персистентности
//
// Каждый документ хранится одним файлом и целиком перезаписывается
// при каждой успешной мутации. Запись атомарна: сначала во временный
// файл, затем os.Rename. Частично записанный документ никогда не
// виден читателям.
//
// Ошибки персистентности не фатальны: in-memory состояние остаётся
// авторитетным, вызывающая сторона логирует и продолжает работу.

// ErrPersistence помечает любую ошибку чтения/записи документов
var ErrPersistence = errors.New("persistence failure")

// writeFileAtomic сериализует value и атомарно записывает его в path
func writeFileAtomic(path string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPersistence, filepath.Base(path), err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir for %s: %v", ErrPersistence, filepath.Base(path), err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, filepath.Base(path), err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrPersistence, filepath.Base(path), err)
	}

	return nil
}

// readFile читает и десериализует документ из path
//
// Возвращает os.ErrNotExist (обёрнутый) если файла нет: вызывающая
// сторона в этом случае использует встроенные значения по умолчанию.
func readFile(path string, value interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return fmt.Errorf("%w: read %s: %v", ErrPersistence, filepath.Base(path), err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrPersistence, filepath.Base(path), err)
	}

	return nil
}
