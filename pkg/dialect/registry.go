package dialect

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrDialectRequired is returned when DDL or catalog text is requested
// without a dialect.
var ErrDialectRequired = errors.New("dialect is required")

// ErrUnknownDialect is returned by Resolve for names nothing registered.
var ErrUnknownDialect = errors.New("unknown dialect")

var (
	mu       sync.RWMutex
	byEngine = map[string]*Dialect{}
)

// Register makes d available under its lower-cased name. Engine dialect
// packages call it from init; it panics on a nil dialect, an empty name, or
// a name registered twice, the way database/sql.Register does for drivers.
func Register(d *Dialect) {
	if d == nil {
		panic("dialect: Register dialect is nil")
	}
	key := strings.ToLower(d.Name)
	if key == "" {
		panic("dialect: Register dialect has no name")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := byEngine[key]; dup {
		panic("dialect: Register called twice for " + key)
	}
	byEngine[key] = d
}

// Get returns the dialect registered as name. Lookup is case-insensitive.
func Get(name string) (*Dialect, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := byEngine[strings.ToLower(name)]
	return d, ok
}

// Resolve is Get with errors: ErrDialectRequired for an empty name,
// ErrUnknownDialect (listing what is registered) otherwise.
func Resolve(name string) (*Dialect, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrDialectRequired
	}
	if d, ok := Get(name); ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w %q (registered: %s)", ErrUnknownDialect, name, strings.Join(List(), ", "))
}

// List returns the registered names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(byEngine))
	for name := range byEngine {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
