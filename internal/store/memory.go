package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// memoryClient is an in-memory record store. It backs the mock build of the
// platform and doubles as the test double for the repositories.
type memoryClient struct {
	mu     sync.Mutex
	tables map[string]*memoryTable
}

type memoryTable struct {
	nextID  int
	records []Fields
}

// NewMemoryClient creates an empty in-memory record store.
func NewMemoryClient() *memoryClient {
	return &memoryClient{
		tables: make(map[string]*memoryTable),
	}
}

func (c *memoryClient) table(entity string) *memoryTable {
	t, ok := c.tables[entity]
	if !ok {
		t = &memoryTable{nextID: 1}
		c.tables[entity] = t
	}
	return t
}

func (c *memoryClient) List(ctx context.Context, entity string, q Query) ([]Fields, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(entity)
	var matched []Fields
	for _, record := range t.records {
		if matchesFilters(record, q.Where) {
			matched = append(matched, cloneFields(record))
		}
	}

	for i := len(q.OrderBy) - 1; i >= 0; i-- {
		s := q.OrderBy[i]
		sort.SliceStable(matched, func(a, b int) bool {
			less := lessValue(matched[a][s.Field], matched[b][s.Field])
			if s.Desc {
				return !less && !equalValue(matched[a][s.Field], matched[b][s.Field])
			}
			return less
		})
	}

	return matched, nil
}

func (c *memoryClient) GetByID(ctx context.Context, entity string, id int, fields []string) (Fields, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, _ := c.table(entity).find(id)
	if record == nil {
		return nil, fmt.Errorf("%w: %s with Id %d does not exist", ErrNotFound, entity, id)
	}
	return cloneFields(record), nil
}

func (c *memoryClient) Create(ctx context.Context, entity string, records []Fields) ([]Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(entity)
	results := make([]Result, len(records))
	for i, record := range records {
		stored := cloneFields(record)
		stored[FieldID] = t.nextID
		t.nextID++
		t.records = append(t.records, stored)
		results[i] = Result{Success: true, Data: cloneFields(stored)}
	}
	return results, nil
}

func (c *memoryClient) Update(ctx context.Context, entity string, records []Fields) ([]Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(entity)
	results := make([]Result, len(records))
	for i, record := range records {
		id, ok := intValue(record[FieldID])
		if !ok {
			results[i] = Result{Success: false, Message: "record is missing an Id"}
			continue
		}
		stored, _ := t.find(id)
		if stored == nil {
			results[i] = Result{Success: false, Message: fmt.Sprintf("record with Id %d does not exist", id)}
			continue
		}
		for key, value := range record {
			if key == FieldID {
				continue
			}
			stored[key] = value
		}
		results[i] = Result{Success: true, Data: cloneFields(stored)}
	}
	return results, nil
}

func (c *memoryClient) Delete(ctx context.Context, entity string, ids []int) ([]Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(entity)
	results := make([]Result, len(ids))
	for i, id := range ids {
		record, idx := t.find(id)
		if record == nil {
			results[i] = Result{Success: false, Message: fmt.Sprintf("record with Id %d does not exist", id)}
			continue
		}
		t.records = append(t.records[:idx], t.records[idx+1:]...)
		results[i] = Result{Success: true, Data: record}
	}
	return results, nil
}

func (t *memoryTable) find(id int) (Fields, int) {
	for i, record := range t.records {
		if recordID, ok := intValue(record[FieldID]); ok && recordID == id {
			return record, i
		}
	}
	return nil, -1
}

func matchesFilters(record Fields, filters []Filter) bool {
	for _, f := range filters {
		value := record[f.Field]
		matched := false
		for _, candidate := range f.Values {
			if equalValue(value, candidate) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func cloneFields(f Fields) Fields {
	clone := make(Fields, len(f))
	for key, value := range f {
		clone[key] = value
	}
	return clone
}

// intValue extracts an integer from the loosely typed values a record can
// carry (ints natively, float64 after a JSON round trip).
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func equalValue(a, b any) bool {
	fa, aok := floatValue(a)
	fb, bok := floatValue(b)
	if aok && bok {
		return fa == fb
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func lessValue(a, b any) bool {
	fa, aok := floatValue(a)
	fb, bok := floatValue(b)
	if aok && bok {
		return fa < fb
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}
