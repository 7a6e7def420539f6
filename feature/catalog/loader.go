package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"wish-archive/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Metadata document names under the configured prefix.
const (
	AvatarObject     = "Avatar.json"
	WeaponObject     = "Weapon.json"
	GachaEventObject = "GachaEvent.json"
)

// RequiredObjects lists the documents a catalog is built from.
var RequiredObjects = []string{AvatarObject, WeaponObject, GachaEventObject}

// ObjectPath joins the prefix and a document name into an object key.
func ObjectPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Loader reads the metadata documents from object storage.
type Loader struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewLoader creates a new metadata loader.
func NewLoader(client storage.Client, bucket, prefix string, logger *zap.Logger) *Loader {
	return &Loader{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Load downloads all metadata documents concurrently and indexes them.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	var (
		avatars  []Avatar
		weapons  []Weapon
		windows  []BannerWindow
		versions = make([]string, len(RequiredObjects))
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		versions[0], err = l.fetch(gctx, AvatarObject, &avatars)
		return err
	})
	g.Go(func() (err error) {
		versions[1], err = l.fetch(gctx, WeaponObject, &weapons)
		return err
	})
	g.Go(func() (err error) {
		versions[2], err = l.fetch(gctx, GachaEventObject, &windows)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := New(avatars, weapons, windows)
	c.Version = strings.Join(versions, "-")

	nAvatars, nWeapons, nWindows := c.Counts()
	l.logger.Info("Metadata catalog loaded",
		zap.Int("avatars", nAvatars),
		zap.Int("weapons", nWeapons),
		zap.Int("windows", nWindows),
		zap.String("version", c.Version),
		zap.Duration("duration", time.Since(start)))

	return c, nil
}

// fetch decodes one document into out and returns its ETag.
func (l *Loader) fetch(ctx context.Context, name string, out any) (string, error) {
	key := ObjectPath(l.prefix, name)

	info, err := l.client.StatObject(ctx, l.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", key, err)
	}

	reader, err := l.client.GetObject(ctx, l.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", key, err)
	}

	return strings.Trim(info.ETag, `"`), nil
}
