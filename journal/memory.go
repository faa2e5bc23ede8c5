package journal

// Memory is an append-only in-process Journal. It backs tests and sessions
// that only need the read view.
type Memory struct {
	records []TransactionRecord
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) RecordTransaction(rec TransactionRecord) error {
	m.records = append(m.records, rec)
	return nil
}

// List returns the recorded transactions in settlement order.
func (m *Memory) List() []TransactionRecord {
	out := make([]TransactionRecord, len(m.records))
	copy(out, m.records)
	return out
}

func (m *Memory) Close() error { return nil }
