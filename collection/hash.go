package collection

// HashDataMap keeps a Go map from key to buffer position. Keys may arrive in
// any order and may be negative; putting a key again stores a new value and
// repoints the key at it.
type HashDataMap[T any] struct {
	index  map[int64]Position
	values *AppendOnlyBuffer[T]
}

// NewHashDataMap creates a hash-backed map over an empty buffer.
func NewHashDataMap[T any](values *AppendOnlyBuffer[T]) *HashDataMap[T] {
	return &HashDataMap[T]{
		index:  make(map[int64]Position),
		values: values,
	}
}

// Put stores v under key.
func (m *HashDataMap[T]) Put(key int64, v T) error {
	pos, err := m.values.Add(v)
	if err != nil {
		return err
	}
	m.index[key] = pos
	return nil
}

// Get returns the value stored under key.
func (m *HashDataMap[T]) Get(key int64) (T, bool, error) {
	pos, ok := m.index[key]
	if !ok {
		var zero T
		return zero, false, nil
	}
	v, err := m.values.Get(pos)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

// Len returns the number of distinct keys.
func (m *HashDataMap[T]) Len() int {
	return len(m.index)
}

// Close closes the buffer and drops the index.
func (m *HashDataMap[T]) Close() error {
	m.index = nil
	return m.values.Close()
}
