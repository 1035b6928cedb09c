package messages

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
)

// Adapter loads translation tables from a source.
type Adapter interface {
	Load(ctx context.Context) (map[string]map[string]string, error)
}

// MapAdapter serves translations from memory.
type MapAdapter struct {
	Data map[string]map[string]string
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]string, error) {
	if a.Data == nil {
		return make(map[string]map[string]string), nil
	}
	return a.Data, nil
}

// FileAdapter reads a single YAML file from disk.
type FileAdapter struct {
	parser *YAMLParser
	path   string
}

func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{parser: NewYAMLParser(), path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]string, error) {
	if !a.parser.SupportsFileExtension(path.Ext(a.path)) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileFormat, a.path)
	}

	done := make(chan struct{})
	var content []byte
	var readErr error

	go func() {
		content, readErr = os.ReadFile(a.path)
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Join(ErrLoadingFileCancelled, ctx.Err())
	case <-done:
	}

	if readErr != nil {
		return nil, errors.Join(ErrFailedToReadFile, readErr)
	}

	return a.parser.Parse(ctx, content)
}

// FSAdapter merges every YAML file found in dir of fsys. Later files override earlier
// ones key by key.
type FSAdapter struct {
	parser *YAMLParser
	fsys   fs.FS
	dir    string
}

func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	return &FSAdapter{parser: NewYAMLParser(), fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]string, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadEmbedded, err)
	}

	result := make(map[string]map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !a.parser.SupportsFileExtension(path.Ext(entry.Name())) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingFileCancelled, err)
		}

		content, err := fs.ReadFile(a.fsys, path.Join(a.dir, entry.Name()))
		if err != nil {
			return nil, errors.Join(ErrFailedToReadEmbedded, err)
		}

		tables, err := a.parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		for lang, table := range tables {
			if result[lang] == nil {
				result[lang] = make(map[string]string, len(table))
			}
			maps.Copy(result[lang], table)
		}
	}

	return result, nil
}

// LayeredAdapter loads base first and lets override replace individual keys.
type LayeredAdapter struct {
	Base     Adapter
	Override Adapter
}

func (a *LayeredAdapter) Load(ctx context.Context) (map[string]map[string]string, error) {
	result, err := a.Base.Load(ctx)
	if err != nil {
		return nil, err
	}
	if a.Override == nil {
		return result, nil
	}

	extra, err := a.Override.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, table := range extra {
		if result[lang] == nil {
			result[lang] = make(map[string]string, len(table))
		}
		maps.Copy(result[lang], table)
	}
	return result, nil
}
