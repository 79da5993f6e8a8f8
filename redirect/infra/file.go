package infra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"redirect-gateway/redirect/domain"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// FileLookup serve um mapeamento somente-leitura carregado de arquivo.
//
// Formatos aceitos (JSON também passa pelo decoder YAML):
//
//	abc: example.com                          # mapa chave -> host
//	[{"key": "abc", "value": "example.com"}]  # formato bulk do Cloudflare KV
type FileLookup struct {
	path string
	mem  *MemoryLookup
	log  *slog.Logger
}

type FileOption func(*FileLookup)

func WithFileLogger(l *slog.Logger) FileOption {
	return func(f *FileLookup) { f.log = l }
}

type kvPair struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// NewFileLookup lê o arquivo uma vez; erro de leitura/parse é fatal aqui.
func NewFileLookup(path string, opts ...FileOption) (*FileLookup, error) {
	f := &FileLookup{
		path: filepath.Clean(path),
		mem:  NewMemoryLookup(nil),
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FileLookup) Get(ctx context.Context, key domain.Key) (domain.Target, error) {
	return f.mem.Get(ctx, key)
}

func (f *FileLookup) Len() int { return f.mem.Len() }

// Reload relê o arquivo. Em caso de erro o mapeamento anterior continua valendo.
func (f *FileLookup) Reload() error {
	content, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("file: read %s: %w", f.path, err)
	}
	values, err := parseMapping(content)
	if err != nil {
		return fmt.Errorf("file: parse %s: %w", f.path, err)
	}
	f.mem.Replace(values)
	return nil
}

func parseMapping(content []byte) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return map[string]string{}, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		values := map[string]string{}
		if err := root.Decode(&values); err != nil {
			return nil, err
		}
		return values, nil

	case yaml.SequenceNode:
		var pairs []kvPair
		if err := root.Decode(&pairs); err != nil {
			return nil, err
		}
		values := make(map[string]string, len(pairs))
		for _, p := range pairs {
			values[p.Key] = p.Value
		}
		return values, nil
	}
	return nil, errors.New("mapping must be a map or a list of {key, value}")
}

// Watch recarrega o arquivo a cada escrita/criação até o ctx encerrar.
// O diretório é observado (e não o arquivo) porque editores costumam
// substituir o arquivo com rename.
func (f *FileLookup) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("file: watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("file: watch %s: %w", f.path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := f.Reload(); err != nil {
				f.log.Warn("mapping reload failed, keeping previous mapping", "path", f.path, "error", err)
				continue
			}
			f.log.Info("mapping reloaded", "path", f.path, "keys", f.mem.Len())
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			f.log.Warn("mapping watcher error", "path", f.path, "error", err)
		}
	}
}
