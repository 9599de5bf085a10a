package records

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"condocare/pkg/kv"
)

// ErrDuplicateID indicates a caller-supplied id already exists in the collection.
var ErrDuplicateID = errors.New("duplicate record id")

// Record is satisfied by a pointer to an entity with an id field.
type Record[T any] interface {
	*T
	GetID() string
	SetID(string)
}

type statusSetter interface {
	SetStatus(string) error
}

// Collection is one JSON array of records stored under a single key.
// Every write loads the whole array, mutates it in memory and writes it back;
// there is no merge, so a collection must have a single writer.
type Collection[T any, P Record[T]] struct {
	store  kv.Store
	key    string
	ids    *IDGenerator
	logger *slog.Logger
}

// NewCollection binds a collection to key. ids and logger may be nil.
func NewCollection[T any, P Record[T]](store kv.Store, key string, ids *IDGenerator, logger *slog.Logger) *Collection[T, P] {
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T, P]{
		store:  store,
		key:    key,
		ids:    ids,
		logger: logger.With("collection", key),
	}
}

// Key returns the storage key of the collection.
func (c *Collection[T, P]) Key() string {
	return c.key
}

// Load returns the stored records in append order. An absent key yields an
// empty slice. On failure the slice is still empty (never nil) so callers can
// log and carry on.
func (c *Collection[T, P]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.logger.Error("failed to load collection", "err", err)
		return []T{}, &StoreError{Op: "load", Key: c.key, Kind: ErrStorageRead, Err: err}
	}
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logger.Warn("corrupt collection data", "err", err)
		return []T{}, &StoreError{Op: "load", Key: c.key, Kind: ErrCorruptData, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Append adds rec to the end of the collection, assigning an id when rec has
// none, and returns the stored record. A collection that fails to load is
// left untouched.
func (c *Collection[T, P]) Append(ctx context.Context, rec T) (T, error) {
	var zero T
	items, err := c.Load(ctx)
	if err != nil {
		return zero, relabel(err, "append")
	}
	p := P(&rec)
	if p.GetID() == "" {
		p.SetID(c.ids.NextAbove(maxNumericID[T, P](items)))
	} else if indexOf[T, P](items, p.GetID()) >= 0 {
		return zero, &StoreError{Op: "append", Key: c.key, Kind: ErrDuplicateID}
	}
	items = append(items, rec)
	if err := c.save(ctx, "append", items); err != nil {
		return zero, err
	}
	c.logger.Debug("record appended", "id", p.GetID(), "count", len(items))
	return rec, nil
}

// Find returns the record with the given id.
func (c *Collection[T, P]) Find(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.Load(ctx)
	if err != nil {
		return zero, relabel(err, "find")
	}
	i := indexOf[T, P](items, id)
	if i < 0 {
		return zero, &StoreError{Op: "find", Key: c.key, Kind: ErrNotFound}
	}
	return items[i], nil
}

// UpdateStatus sets the status of one record in place. Entities without a
// status field fail with ErrStatusUnsupported; values outside the entity's
// status set fail with the entity's own error and nothing is written.
func (c *Collection[T, P]) UpdateStatus(ctx context.Context, id, status string) (T, error) {
	var zero T
	items, err := c.Load(ctx)
	if err != nil {
		return zero, relabel(err, "update status")
	}
	i := indexOf[T, P](items, id)
	if i < 0 {
		return zero, &StoreError{Op: "update status", Key: c.key, Kind: ErrNotFound}
	}
	setter, ok := any(P(&items[i])).(statusSetter)
	if !ok {
		return zero, &StoreError{Op: "update status", Key: c.key, Kind: ErrStatusUnsupported}
	}
	if err := setter.SetStatus(status); err != nil {
		return zero, err
	}
	if err := c.save(ctx, "update status", items); err != nil {
		return zero, err
	}
	return items[i], nil
}

// Clear removes the whole collection. Clearing an absent collection succeeds.
func (c *Collection[T, P]) Clear(ctx context.Context) error {
	if err := c.store.Remove(ctx, c.key); err != nil {
		c.logger.Error("failed to clear collection", "err", err)
		return &StoreError{Op: "clear", Key: c.key, Kind: ErrStorageWrite, Err: err}
	}
	return nil
}

func (c *Collection[T, P]) save(ctx context.Context, op string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return &StoreError{Op: op, Key: c.key, Kind: ErrStorageWrite, Err: err}
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		c.logger.Error("failed to save collection", "op", op, "err", err)
		return &StoreError{Op: op, Key: c.key, Kind: ErrStorageWrite, Err: err}
	}
	return nil
}

func indexOf[T any, P Record[T]](items []T, id string) int {
	for i := range items {
		if P(&items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func relabel(err error, op string) error {
	var se *StoreError
	if errors.As(err, &se) {
		copied := *se
		copied.Op = op
		return &copied
	}
	return err
}

func maxNumericID[T any, P Record[T]](items []T) int64 {
	var top int64
	for i := range items {
		n, err := strconv.ParseInt(P(&items[i]).GetID(), 10, 64)
		if err == nil && n > top {
			top = n
		}
	}
	return top
}
