package solvedac

import (
	"context"
	"sync"
)

// Mock is a deterministic Client for testing. Unset fields yield
// zero-value results; Err, when set, is returned by every method.
type Mock struct {
	mu sync.Mutex

	Profile *User
	Tags    []TagStat
	Levels  []LevelStat
	Err     error

	// Calls counts invocations per method name.
	Calls map[string]int
}

func (m *Mock) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[method]++
}

func (m *Mock) User(_ context.Context, handle string) (*User, error) {
	m.record("User")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Profile != nil {
		return m.Profile, nil
	}
	return &User{Handle: handle}, nil
}

func (m *Mock) TagStats(_ context.Context, _ string) ([]TagStat, error) {
	m.record("TagStats")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tags, nil
}

func (m *Mock) LevelStats(_ context.Context, _ string) ([]LevelStat, error) {
	m.record("LevelStats")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Levels, nil
}
