// Package store persists bookmarks and loads syllabus configuration.
package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/syllabus/pkg/bookmark"
)

// ErrNotFound reports a bookmark id the store does not hold.
var ErrNotFound = errors.New("store: bookmark not found")

// Persistence defines the persistence contract for bookmarks.
type Persistence interface {
	List(ctx context.Context) []*bookmark.Bookmark
	ListSubject(ctx context.Context, subject string) []*bookmark.Bookmark
	Get(ctx context.Context, id string) (*bookmark.Bookmark, error)
	Has(ctx context.Context, subject, module, topic string) bool
	Store(b *bookmark.Bookmark) error
	Delete(b *bookmark.Bookmark) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// No read cache: other processes edit the same tree and Watch
		// reports those edits.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*bookmark.Bookmark, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	b := &bookmark.Bookmark{}
	if err := json.Unmarshal(val, b); err != nil {
		return nil, err
	}
	b.ID = keyToPathTransform(key).FileName
	return b, nil
}

func (p *persistence) List(ctx context.Context) []*bookmark.Bookmark {
	return p.collect(ctx, "")
}

func (p *persistence) ListSubject(ctx context.Context, subject string) []*bookmark.Bookmark {
	return p.collect(ctx, toSubject(subject))
}

func (p *persistence) collect(ctx context.Context, dir string) []*bookmark.Bookmark {
	all := make([]*bookmark.Bookmark, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if dir != "" && keyToPathTransform(key).Path[0] != dir {
			continue
		}
		b, err := p.read(key)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("store: skipping unreadable bookmark")
			continue
		}
		all = append(all, b)
	}
	sortBookmarks(all)
	return all
}

func (p *persistence) Get(ctx context.Context, id string) (*bookmark.Bookmark, error) {
	for key := range p.d.Keys(ctx.Done()) {
		if keyToPathTransform(key).FileName == id {
			return p.read(key)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (p *persistence) Has(_ context.Context, subject, module, topic string) bool {
	return p.d.Has(toKey(subject, bookmark.KeyFor(subject, module, topic)))
}

func (p *persistence) Store(b *bookmark.Bookmark) error {
	if b == nil {
		return errors.New("store: nil bookmark")
	}
	if strings.TrimSpace(b.Subject) == "" {
		return errors.New("store: bookmark subject required")
	}
	if b.ID == "" {
		b.ID = bookmark.KeyFor(b.Subject, b.Module, b.Topic)
	}
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	if err := p.d.Write(toKey(b.Subject, b.ID), data); err != nil {
		return fmt.Errorf("store: write bookmark: %w", err)
	}
	return nil
}

func (p *persistence) Delete(b *bookmark.Bookmark) error {
	if b == nil {
		return errors.New("store: nil bookmark")
	}
	id := b.ID
	if id == "" {
		id = bookmark.KeyFor(b.Subject, b.Module, b.Topic)
	}
	if err := p.d.Erase(toKey(b.Subject, id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func sortBookmarks(all []*bookmark.Bookmark) {
	sort.SliceStable(all, func(i, j int) bool {
		left, right := all[i], all[j]
		lt, rt := left.Created.Time, right.Created.Time
		switch {
		case lt.Equal(rt):
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			return lt.Before(rt)
		}
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `subject-id`
func toKey(subject, id string) string {
	return fmt.Sprintf("%s-%s", toSubject(subject), id)
}

func toSubject(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromSubject(s string) string {
	subject, err := hex.DecodeString(s)
	if err != nil {
		return ""
	}
	return string(subject)
}
