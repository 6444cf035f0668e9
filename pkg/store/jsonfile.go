package store

import (
	"context"
	"encoding/json"
	"os"

	"github.com/voidshard/beanbook/pkg/crypto"
	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/logger"
)

// JSONFile writes entries as one JSON array, replacing the file. When keys are
// set the array is sealed (encrypted and signed) first.
type JSONFile struct {
	filename string
	sealKey  string
	signKey  string
}

func NewJSONFile(filename string) Store {
	return &JSONFile{filename: filename}
}

func NewSealedJSONFile(filename, sealKey, signKey string) Store {
	return &JSONFile{filename: filename, sealKey: sealKey, signKey: signKey}
}

func (f *JSONFile) Write(ctx context.Context, entries []*domain.Entry) error {
	if entries == nil {
		entries = []*domain.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	if f.sealKey != "" {
		sealed, err := crypto.Seal(data, f.sealKey, f.signKey)
		if err != nil {
			return err
		}
		data = []byte(sealed)
	}

	if err := os.WriteFile(f.filename, data, 0644); err != nil {
		return err
	}
	log := logger.FromContext(ctx)
	log.Info().Str("file", f.filename).Int("entries", len(entries)).Bool("sealed", f.sealKey != "").Msg("wrote entries")
	return nil
}

// ReadJSONFile loads entries written by a JSONFile store. Keys are only needed
// for sealed files.
func ReadJSONFile(filename, sealKey, signKey string) ([]*domain.Entry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if sealKey != "" {
		data, err = crypto.Open(string(data), sealKey, signKey)
		if err != nil {
			return nil, err
		}
	}
	var entries []*domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
