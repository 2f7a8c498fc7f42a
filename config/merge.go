package config

// MergeStrategy writes a source's values into a Store.
type MergeStrategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// Merge writes values into store, recording source for every key it
	// writes, and returns the number of keys written.
	Merge(store *Store, values FlatMap, source Source) int
}

// MergeFirstWins keeps the earliest value for a key: a key already present
// in the store is left untouched.
type MergeFirstWins struct{}

// Name implements MergeStrategy.
func (MergeFirstWins) Name() string { return "first-wins" }

// Merge implements MergeStrategy.
func (MergeFirstWins) Merge(store *Store, values FlatMap, source Source) int {
	written := 0
	store.update(func(current map[string]string, sources map[string]Source) {
		for k, v := range values {
			if _, exists := current[k]; exists {
				continue
			}
			current[k] = v
			sources[k] = source
			written++
		}
	})
	return written
}

// MergeOverwrite always replaces the stored value.
type MergeOverwrite struct{}

// Name implements MergeStrategy.
func (MergeOverwrite) Name() string { return "overwrite" }

// Merge implements MergeStrategy.
func (MergeOverwrite) Merge(store *Store, values FlatMap, source Source) int {
	store.update(func(current map[string]string, sources map[string]Source) {
		for k, v := range values {
			current[k] = v
			sources[k] = source
		}
	})
	return len(values)
}
