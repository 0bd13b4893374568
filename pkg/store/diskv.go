package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/facemenu/pkg/menu"
)

// ErrMenuNotFound is returned when no menu is stored under a key.
var ErrMenuNotFound = errors.New("store: menu not found")

// Repository persists menus by key.
type Repository interface {
	Exists(ctx context.Context, key string) bool
	Load(ctx context.Context, key string) (*menu.Menu, error)
	Save(ctx context.Context, key string, m *menu.Menu, operation string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

const (
	// CurrentSchema versions the on-disk envelope.
	CurrentSchema = "facemenu/v1"

	menusDir = "menus"
	tmpDir   = ".tmp"
)

// Record is the value written for each key.
type Record struct {
	Schema    string        `json:"schema"`
	Key       string        `json:"key"`
	Operation string        `json:"operation,omitempty"`
	SavedAt   time.Time     `json:"savedAt"`
	Menu      menu.Document `json:"menu"`
}

// Load creates a Repository backed by diskv using the provided config.
func Load(cfg Config) (Repository, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	return &repository{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, tmpDir),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, now: time.Now}, nil
}

type repository struct {
	d        *diskv.Diskv
	basePath string
	now      func() time.Time
}

func (r *repository) Exists(_ context.Context, key string) bool {
	if strings.TrimSpace(key) == "" {
		return false
	}
	return r.d.Has(toDiskKey(key))
}

func (r *repository) Load(_ context.Context, key string) (*menu.Menu, error) {
	rec, err := r.read(key)
	if err != nil {
		return nil, err
	}
	m, err := menu.FromDocument(rec.Menu)
	if err != nil {
		return nil, fmt.Errorf("store: menu %q: %w", key, err)
	}
	return m, nil
}

func (r *repository) read(key string) (*Record, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("store: menu key required")
	}
	val, err := r.d.Read(toDiskKey(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrMenuNotFound, key)
		}
		return nil, err
	}
	rec := &Record{}
	if err := json.Unmarshal(val, rec); err != nil {
		return nil, fmt.Errorf("store: decode %q: %w", key, err)
	}
	if rec.Schema == "" {
		rec.Schema = CurrentSchema
	}
	if rec.Schema != CurrentSchema {
		return nil, fmt.Errorf("store: %q has unsupported schema %q", key, rec.Schema)
	}
	return rec, nil
}

func (r *repository) Save(_ context.Context, key string, m *menu.Menu, operation string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("store: menu key required")
	}
	if m == nil {
		return errors.New("store: menu required")
	}
	rec := Record{
		Schema:    CurrentSchema,
		Key:       key,
		Operation: operation,
		SavedAt:   r.now().UTC(),
		Menu:      m.Document(),
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return r.d.Write(toDiskKey(key), data)
}

func (r *repository) Delete(_ context.Context, key string) error {
	k := toDiskKey(key)
	if !r.d.Has(k) {
		return fmt.Errorf("%w: %q", ErrMenuNotFound, key)
	}
	return r.d.Erase(k)
}

func (r *repository) Keys(ctx context.Context) []string {
	var keys []string
	for k := range r.d.Keys(ctx.Done()) {
		key, ok := fromDiskKey(k)
		if !ok {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Describe returns the stored envelope for key, including its save metadata.
func Describe(repo Repository, key string) (*Record, error) {
	r, ok := repo.(*repository)
	if !ok {
		return nil, errors.New("store: repository does not keep records")
	}
	return r.read(key)
}

// BasePath reports where a repository created by Load keeps its files.
func BasePath(repo Repository) string {
	if r, ok := repo.(*repository); ok {
		return r.basePath
	}
	return ""
}

func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{menusDir},
		FileName: s + ".json",
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) != 1 || pathKey.Path[0] != menusDir {
		return ""
	}
	name, ok := strings.CutSuffix(pathKey.FileName, ".json")
	if !ok {
		return ""
	}
	return name
}

// toDiskKey maps an arbitrary menu key onto a file name safe string.
func toDiskKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

func fromDiskKey(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: skipping %q: %v\n", s, err)
		return "", false
	}
	return string(b), true
}
