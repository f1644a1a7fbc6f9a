// Package memo caches layout results by the content they were computed from.
// Tables are owned by the caller and invalidated explicitly.
package memo

import (
	"bytes"
	"encoding/gob"
	"sync"

	"github.com/google/uuid"
	"github.com/jsphweid/scorelayout/model"
	"github.com/pkg/errors"
)

var namespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("scorelayout"))

// Of is a stable name-based UUID of v's gob encoding. Equal content gives an
// equal key across runs.
func Of(v any) (string, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return "", errors.Wrap(err, "encoding memo key")
	}
	return uuid.NewSHA1(namespace, buf.Bytes()).String(), nil
}

type measureContent struct {
	Events       []model.Event
	Clef         model.Clef
	KeySignature string
	IsPickup     bool
	TotalQuants  int
}

// Key identifies a measure's content under a clef and key signature, along
// with the measure options that change its layout.
func Key(events []model.Event, clef model.Clef, keySignature string, isPickup bool, totalQuants int) string {
	key, err := Of(measureContent{
		Events:       events,
		Clef:         clef,
		KeySignature: keySignature,
		IsPickup:     isPickup,
		TotalQuants:  totalQuants,
	})
	if err != nil {
		// events are plain data and always encode
		panic(err)
	}
	return key
}

type Table[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

func NewTable[V any]() *Table[V] {
	return &Table[V]{entries: make(map[string]V)}
}

func (t *Table[V]) Get(key string) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[key]
	return v, ok
}

func (t *Table[V]) Put(key string, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key] = v
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss.
func (t *Table[V]) GetOrCompute(key string, compute func() V) V {
	if v, ok := t.Get(key); ok {
		return v
	}
	v := compute()
	t.Put(key, v)
	return v
}

func (t *Table[V]) Invalidate(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

func (t *Table[V]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]V)
}

func (t *Table[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
