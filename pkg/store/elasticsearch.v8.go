package store

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

// from https://github.com/elastic/go-elasticsearch/blob/master/_examples/bulk/indexer.go

const (
	esFlush   = 2048
	esWorkers = 4
)

// ElasticsearchV8 bulk-indexes entries by ID, so re-exporting a report
// overwrites its documents.
type ElasticsearchV8 struct {
	index     string
	addresses []string
}

func NewElasticsearchV8(index string, urls ...string) Store {
	return &ElasticsearchV8{index: index, addresses: urls}
}

func (e *ElasticsearchV8) client() (*elasticsearch.Client, error) {
	retryBackoff := backoff.NewExponentialBackOff()

	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: e.addresses,

		// Retry on 429 TooManyRequests statuses
		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},

		MaxRetries: 5,
	})
}

func (e *ElasticsearchV8) Write(ctx context.Context, entries []*domain.Entry) error {
	log := logger.FromContext(ctx).With().Str("index", e.index).Logger()

	es, err := e.client()
	if err != nil {
		return err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.index,
		FlushBytes:    esFlush,
		Client:        es,
		NumWorkers:    esWorkers,
		FlushInterval: 10 * time.Second,
	})
	if err != nil {
		return err
	}

	res, err := es.Indices.Create(e.index)
	if err != nil {
		log.Warn().Err(err).Msg("attempted to make index")
	} else {
		res.Body.Close()
	}

	for _, entry := range entries {
		data, err := entry.JSON()
		if err != nil {
			return err
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: entry.ID,
				Body:       bytes.NewReader(data),
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					if err != nil {
						log.Error().Err(err).Str("id", item.DocumentID).Msg("failed to index entry")
					} else {
						log.Error().Str("id", item.DocumentID).Str("type", res.Error.Type).Msg(res.Error.Reason)
					}
				},
			},
		)
		if err != nil {
			return err
		}
	}

	if err := bi.Close(ctx); err != nil {
		return err
	}

	biStats := bi.Stats()
	if biStats.NumFailed > 0 {
		log.Error().Uint64("flushed", biStats.NumFlushed).Uint64("failed", biStats.NumFailed).Msg("indexing finished with errors")
		return fmt.Errorf("failed indexing %d docs", biStats.NumFailed)
	}
	log.Info().Uint64("flushed", biStats.NumFlushed).Msg("indexed entries")
	return nil
}
