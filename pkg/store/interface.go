package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/voidshard/beanbook/pkg/config"
	"github.com/voidshard/beanbook/pkg/domain"
)

// ErrOutPath is returned for output paths Open cannot understand.
var ErrOutPath = errors.New("invalid out path, expected [jsonfile:/path/file.json sealed:/path/file.sealed es8:http://elasticsearch:9200 sqlite:/path/file.db]")

type Store interface {
	Write(context.Context, []*domain.Entry) error
}

// Open returns the store named by out, "<scheme>:<target>". An empty es8
// target uses the configured addresses.
func Open(out string, cfg *config.Config) (Store, error) {
	bits := strings.SplitN(out, ":", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrOutPath, out)
	}

	switch bits[0] {
	case "jsonfile":
		return NewJSONFile(bits[1]), nil
	case "sealed":
		if !cfg.CanSeal() {
			return nil, fmt.Errorf("sealed output needs BEANBOOK_SEAL_KEY and BEANBOOK_SIGN_KEY")
		}
		return NewSealedJSONFile(bits[1], cfg.SealKey, cfg.SignKey), nil
	case "es8":
		addrs := cfg.ESAddresses
		if bits[1] != "" {
			addrs = strings.Split(bits[1], ",")
		}
		return NewElasticsearchV8(cfg.ESIndex, addrs...), nil
	case "sqlite":
		return NewSQLite(bits[1]), nil
	default:
		return nil, fmt.Errorf("%w: unknown scheme %q", ErrOutPath, bits[0])
	}
}

// WriteAll writes entries to every store concurrently, returning the first error.
func WriteAll(ctx context.Context, entries []*domain.Entry, stores ...Store) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range stores {
		s := s
		g.Go(func() error {
			return s.Write(ctx, entries)
		})
	}
	return g.Wait()
}
