// ABOUTME: Vector store CRUD with a BadgerDB backend and cosine similarity search
// ABOUTME: Documents are chunked, embedded, and persisted per store under key prefixes
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Key prefixes for the entity types kept in badger.
const (
	storeKeyPrefix = "store:"
	docKeyPrefix   = "doc:"
	chunkKeyPrefix = "chunk:"
)

// StoreIDPrefix marks vector store ids minted by CreateStore.
const StoreIDPrefix = "vs_"

// ErrStoreNotFound is returned when a referenced store id does not exist.
var ErrStoreNotFound = errors.New("store: vector store not found")

// Embedder converts text into an embedding vector. Implemented by the model
// client layer.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// StoreInfo describes one vector store.
type StoreInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// DocumentInfo describes one ingested document.
type DocumentInfo struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Name      string    `json:"name"`
	Chunks    int       `json:"chunks"`
	CreatedAt time.Time `json:"createdAt"`
}

// SearchResult is one similarity hit.
type SearchResult struct {
	StoreID      string  `json:"storeId"`
	DocumentName string  `json:"documentName"`
	Text         string  `json:"text"`
	Score        float64 `json:"score"`
}

// chunkRecord is the persisted form of one embedded chunk.
type chunkRecord struct {
	DocumentName string    `json:"documentName"`
	Text         string    `json:"text"`
	Vector       []float64 `json:"vector"`
}

// Manager owns the badger database and the embedding calls behind it.
type Manager struct {
	db       *badger.DB
	embedder Embedder
	chunker  *Chunker
}

// NewManager opens (or creates) an on-disk store under dir.
func NewManager(dir string, embedder Embedder) (*Manager, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	return newManager(opts, embedder)
}

// NewManagerInMemory opens a memory-only store, useful for tests.
func NewManagerInMemory(embedder Embedder) (*Manager, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return newManager(opts, embedder)
}

func newManager(opts badger.Options, embedder Embedder) (*Manager, error) {
	if embedder == nil {
		return nil, fmt.Errorf("store: embedder must not be nil")
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Manager{db: db, embedder: embedder, chunker: NewChunker()}, nil
}

// Close releases the underlying database.
func (m *Manager) Close() error {
	return m.db.Close()
}

// CreateStore mints a new vector store.
func (m *Manager) CreateStore(ctx context.Context, name string) (*StoreInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("store: name must not be empty")
	}

	info := &StoreInfo{
		ID:        StoreIDPrefix + uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.setJSON(storeKeyPrefix+info.ID, info); err != nil {
		return nil, fmt.Errorf("persist store: %w", err)
	}
	return info, nil
}

// GetStore loads a store's metadata.
func (m *Manager) GetStore(ctx context.Context, id string) (*StoreInfo, error) {
	var info StoreInfo
	if err := m.getJSON(storeKeyPrefix+id, &info); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return &info, nil
}

// ListStores returns all stores, newest first.
func (m *Manager) ListStores(ctx context.Context) ([]StoreInfo, error) {
	var stores []StoreInfo
	err := m.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(storeKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var info StoreInfo
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &info)
			})
			if err != nil {
				return err
			}
			stores = append(stores, info)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	sort.Slice(stores, func(i, j int) bool {
		return stores[i].CreatedAt.After(stores[j].CreatedAt)
	})
	return stores, nil
}

// DeleteStore removes a store and everything ingested into it.
func (m *Manager) DeleteStore(ctx context.Context, id string) error {
	if _, err := m.GetStore(ctx, id); err != nil {
		return err
	}

	if err := m.db.DropPrefix(
		[]byte(chunkKeyPrefix+id+":"),
		[]byte(docKeyPrefix+id+":"),
	); err != nil {
		return fmt.Errorf("drop store data: %w", err)
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(storeKeyPrefix + id))
	})
}

// AddDocument chunks, embeds, and persists a document into a store.
func (m *Manager) AddDocument(ctx context.Context, storeID, name, text string) (*DocumentInfo, error) {
	if _, err := m.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("store: document text must not be empty")
	}
	if strings.TrimSpace(name) == "" {
		name = "untitled"
	}

	chunks := m.chunker.ChunkText(text)
	doc := &DocumentInfo{
		ID:        "doc_" + uuid.NewString(),
		StoreID:   storeID,
		Name:      name,
		Chunks:    len(chunks),
		CreatedAt: time.Now().UTC(),
	}

	// Embed everything before touching the database, so a failed embedding
	// leaves no partial chunks behind for Search to surface.
	records := make([]chunkRecord, len(chunks))
	for i, chunk := range chunks {
		vector, err := m.embedder.Embed(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		records[i] = chunkRecord{DocumentName: name, Text: chunk, Vector: vector}
	}

	// Chunks and the document record land in one transaction: either the
	// whole document is ingested or none of it is.
	err := m.db.Update(func(txn *badger.Txn) error {
		for i, rec := range records {
			data, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("encode chunk %d: %w", i, err)
			}
			key := fmt.Sprintf("%s%s:%s:%06d", chunkKeyPrefix, storeID, doc.ID, i)
			if err := txn.Set([]byte(key), data); err != nil {
				return fmt.Errorf("persist chunk %d: %w", i, err)
			}
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		return txn.Set([]byte(docKeyPrefix+storeID+":"+doc.ID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("persist document: %w", err)
	}
	return doc, nil
}

// Search performs cosine similarity search across the given stores and
// returns the top maxResults hits, best first.
func (m *Manager) Search(ctx context.Context, storeIDs []string, query string, maxResults int) ([]SearchResult, error) {
	if len(storeIDs) == 0 {
		return nil, fmt.Errorf("store: at least one store id is required")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	queryVector, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	var results []SearchResult
	for _, storeID := range storeIDs {
		if _, err := m.GetStore(ctx, storeID); err != nil {
			return nil, fmt.Errorf("store %s: %w", storeID, err)
		}

		err := m.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(chunkKeyPrefix + storeID + ":")
			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				var rec chunkRecord
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &rec)
				})
				if err != nil {
					continue
				}
				results = append(results, SearchResult{
					StoreID:      storeID,
					DocumentName: rec.DocumentName,
					Text:         rec.Text,
					Score:        cosineSimilarity(queryVector, rec.Vector),
				})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("search store %s: %w", storeID, err)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// Retrieve returns the text of the top hits, for use as generation context.
// It satisfies the model client's Retriever interface.
func (m *Manager) Retrieve(ctx context.Context, storeIDs []string, query string, maxResults int) ([]string, error) {
	results, err := m.Search(ctx, storeIDs, query, maxResults)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	return texts, nil
}

func (m *Manager) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (m *Manager) getJSON(key string, v any) error {
	return m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
