package journal

import (
	"encoding/csv"
	"os"
	"time"
)

type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{"tx_id", "side", "symbol", "price", "placed_at", "settled_at"}); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordTransaction(rec TransactionRecord) error {
	err := j.w.Write([]string{
		rec.TxID,
		string(rec.Side),
		rec.Symbol,
		rec.Price.String(),
		rec.PlacedAt.Format(time.RFC3339),
		rec.SettledAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}
