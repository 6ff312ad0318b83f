package telemetry

import "sync"

// Report is a single call made against a MemoryAPI.
type Report struct {
	Kind   string
	ID     string
	Params []any
	Count  int64
}

// MemoryAPI records every report in memory, it is meant for tests that need
// to assert on what a component reported.
type MemoryAPI struct {
	mutex   sync.Mutex
	reports []Report
}

func (m *MemoryAPI) record(r Report) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.reports = append(m.reports, r)
}

func (m *MemoryAPI) ReportBroken(id string, params ...any) {
	m.record(Report{Kind: "broken", ID: id, Params: params})
}

func (m *MemoryAPI) ReportWarning(id string, params ...any) {
	m.record(Report{Kind: "warning", ID: id, Params: params})
}

func (m *MemoryAPI) ReportDebug(msg string, params ...any) {
	m.record(Report{Kind: "debug", ID: msg, Params: params})
}

func (m *MemoryAPI) ReportCount(id string, count int64) {
	m.record(Report{Kind: "count", ID: id, Count: count})
}

// Reports returns a copy of everything recorded so far.
func (m *MemoryAPI) Reports() []Report {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make([]Report, len(m.reports))
	copy(out, m.reports)
	return out
}

// Count returns the last count reported under id and whether there was one.
func (m *MemoryAPI) Count(id string) (int64, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i := len(m.reports) - 1; i >= 0; i-- {
		r := m.reports[i]
		if r.Kind == "count" && r.ID == id {
			return r.Count, true
		}
	}
	return 0, false
}

// Broken returns every broken report.
func (m *MemoryAPI) Broken() []Report {
	var out []Report
	for _, r := range m.Reports() {
		if r.Kind == "broken" {
			out = append(out, r)
		}
	}
	return out
}
