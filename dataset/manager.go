package dataset

import "sort"

// Manager keeps a current working table plus a registry of named tables,
// such as derived regression or transformation datasets. It is intended for
// single-goroutine use.
type Manager struct {
	current  *Table
	datasets map[string]*Table
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{datasets: make(map[string]*Table)}
}

// SetCurrent replaces the current working table.
func (m *Manager) SetCurrent(t *Table) {
	m.current = t
}

// Current returns the current working table, or nil when none is loaded.
func (m *Manager) Current() *Table {
	return m.current
}

// HasData reports whether a non-empty current table is loaded.
func (m *Manager) HasData() bool {
	return m.current != nil && m.current.NumRows() > 0
}

// Add registers a copy of the table under the given name. The current
// working table is left unchanged.
func (m *Manager) Add(name string, t *Table) {
	cp := t.Copy()
	cp.SetName(name)
	m.datasets[name] = cp
}

// Get returns the named table.
func (m *Manager) Get(name string) (*Table, bool) {
	t, ok := m.datasets[name]
	return t, ok
}

// List returns all registered dataset names in sorted order.
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.datasets))
	for name := range m.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Switch makes the named table current. It reports whether the name existed.
func (m *Manager) Switch(name string) bool {
	t, ok := m.datasets[name]
	if !ok {
		return false
	}
	m.current = t.Copy()
	return true
}

// Clear drops the current table and every registered dataset.
func (m *Manager) Clear() {
	m.current = nil
	m.datasets = make(map[string]*Table)
}
