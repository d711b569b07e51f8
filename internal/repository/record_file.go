package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/Domenick1991/cabinbooking/internal/domain"
)

const recordFields = 5

// FileStore keeps one CSV row per booking:
// seat,reference,passport_number,first_name,last_name.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Append(_ context.Context, record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(toRow(record)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return f.Close()
}

// Remove rewrites the file without the rows for seat.
func (s *FileStore) Remove(_ context.Context, seat string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	for _, row := range rows {
		if row[0] == seat {
			continue
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("rewrite %s: %w", s.path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) List(_ context.Context) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows()
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		if len(row) != recordFields {
			log.Printf("skip %s row %d: want %d fields, got %d", s.path, i+1, recordFields, len(row))
			continue
		}
		records = append(records, fromRow(row))
	}
	return records, nil
}

func (s *FileStore) readRows() ([][]string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.path, err)
		}
		rows = append(rows, row)
	}
}

func toRow(r domain.Record) []string {
	return []string{r.Seat, r.Reference, r.PassportNumber, r.FirstName, r.LastName}
}

func fromRow(row []string) domain.Record {
	return domain.Record{
		Seat:           row[0],
		Reference:      row[1],
		PassportNumber: row[2],
		FirstName:      row[3],
		LastName:       row[4],
	}
}
