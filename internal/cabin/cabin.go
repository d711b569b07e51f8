package cabin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	AislePlaceholder   = "X"
	StoragePlaceholder = "S"
)

var (
	ErrInvalidSeat  = errors.New("invalid seat")
	ErrReservedZone = fmt.Errorf("%w: reserved zone", ErrInvalidSeat)
)

type CellKind int

const (
	CellSeat CellKind = iota
	CellAisle
	CellStorage
)

// Config describes the cabin geometry. StorageColumns are 0-based and apply
// to every row behind the aisle.
type Config struct {
	Rows           int   `yaml:"rows"`
	Columns        int   `yaml:"columns"`
	AisleRow       int   `yaml:"aisle_row"`
	StorageColumns []int `yaml:"storage_columns"`
}

func DefaultConfig() Config {
	return Config{
		Rows:           7,
		Columns:        80,
		AisleRow:       3,
		StorageColumns: []int{76, 77},
	}
}

func (c Config) Validate() error {
	if c.Rows < 2 || c.Rows > 27 {
		return fmt.Errorf("cabin rows must be between 2 and 27, got %d", c.Rows)
	}
	if c.Columns < 1 {
		return fmt.Errorf("cabin columns must be positive, got %d", c.Columns)
	}
	if c.AisleRow < 0 || c.AisleRow >= c.Rows {
		return fmt.Errorf("aisle row %d outside 0..%d", c.AisleRow, c.Rows-1)
	}
	for _, col := range c.StorageColumns {
		if col < 0 || col >= c.Columns {
			return fmt.Errorf("storage column %d outside 0..%d", col, c.Columns-1)
		}
	}
	return nil
}

type Cell struct {
	Label string
	Kind  CellKind
}

type Seat struct {
	Column int
	Row    byte
}

func (s Seat) String() string {
	return strconv.Itoa(s.Column) + string(s.Row)
}

// Layout is the generated grid. It is never modified after NewLayout.
type Layout struct {
	cfg     Config
	grid    [][]Cell
	seats   []string
	index   map[string]CellKind
	letters string
}

func NewLayout(cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	storage := make(map[int]bool, len(cfg.StorageColumns))
	for _, col := range cfg.StorageColumns {
		storage[col] = true
	}

	l := &Layout{
		cfg:   cfg,
		grid:  make([][]Cell, cfg.Rows),
		index: make(map[string]CellKind),
	}

	var letters strings.Builder
	for r := 0; r < cfg.Rows; r++ {
		row := make([]Cell, cfg.Columns)
		if r == cfg.AisleRow {
			for c := range row {
				row[c] = Cell{Label: AislePlaceholder, Kind: CellAisle}
			}
			l.grid[r] = row
			continue
		}

		letter := rowLetter(r, cfg.AisleRow)
		letters.WriteByte(letter)
		for c := range row {
			label := Seat{Column: c + 1, Row: letter}.String()
			if r > cfg.AisleRow && storage[c] {
				row[c] = Cell{Label: StoragePlaceholder, Kind: CellStorage}
				l.index[label] = CellStorage
				continue
			}
			row[c] = Cell{Label: label, Kind: CellSeat}
			l.index[label] = CellSeat
			l.seats = append(l.seats, label)
		}
		l.grid[r] = row
	}
	l.letters = letters.String()

	return l, nil
}

// rowLetter skips the aisle so the letters behind it continue the alphabet.
func rowLetter(row, aisle int) byte {
	if row > aisle {
		return byte('A' + row - 1)
	}
	return byte('A' + row)
}

// Rows returns a copy of the grid in display order.
func (l *Layout) Rows() [][]Cell {
	out := make([][]Cell, len(l.grid))
	for i, row := range l.grid {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}

// Seats returns every bookable seat identifier in row-major order.
func (l *Layout) Seats() []string {
	return append([]string(nil), l.seats...)
}

func (l *Layout) Capacity() int {
	return len(l.seats)
}

func (l *Layout) IsBookable(id string) bool {
	_, err := l.Parse(id)
	return err == nil
}

// Parse normalizes id and checks that it names a bookable seat.
func (l *Layout) Parse(id string) (Seat, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if len(id) < 2 {
		return Seat{}, fmt.Errorf("%w: %q", ErrInvalidSeat, id)
	}

	letter := id[len(id)-1]
	digits := id[:len(id)-1]
	if strings.IndexByte(l.letters, letter) < 0 {
		return Seat{}, fmt.Errorf("%w: %q has unknown row letter", ErrInvalidSeat, id)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Seat{}, fmt.Errorf("%w: %q has non-numeric column", ErrInvalidSeat, id)
		}
	}
	column, err := strconv.Atoi(digits)
	if err != nil || column < 1 || column > l.cfg.Columns {
		return Seat{}, fmt.Errorf("%w: %q column out of range 1..%d", ErrInvalidSeat, id, l.cfg.Columns)
	}

	seat := Seat{Column: column, Row: letter}
	if l.index[seat.String()] == CellStorage {
		return Seat{}, fmt.Errorf("%w: %s is storage", ErrReservedZone, seat)
	}
	return seat, nil
}
