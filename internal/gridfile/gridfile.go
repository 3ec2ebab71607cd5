// Package gridfile reads and writes city grids in the plain-text format used
// by the sample cities: a first line holding the side length N followed by N
// rows of N tags (M, B or F). Tags may be separated by whitespace or packed.
package gridfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"schelling/internal/sims/schelling"
)

// Load reads a city from the file at path.
func Load(path string) (*schelling.City, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening grid file: %w", err)
	}
	defer f.Close()

	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading grid file %s: %w", path, err)
	}
	return c, nil
}

// Read parses a city from r. Blank lines are ignored.
func Read(r io.Reader) (*schelling.City, error) {
	scanner := bufio.NewScanner(r)
	n := -1
	var rows [][]schelling.Household
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if n < 0 {
			size, err := strconv.Atoi(text)
			if err != nil || size <= 0 {
				return nil, fmt.Errorf("line %d: invalid grid size %q", line, text)
			}
			n = size
			continue
		}
		if len(rows) == n {
			return nil, fmt.Errorf("line %d: more than %d rows", line, n)
		}
		row, err := parseRow(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) != n {
			return nil, fmt.Errorf("line %d: %d cells, want %d", line, len(row), n)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("empty grid")
	}
	if len(rows) != n {
		return nil, fmt.Errorf("got %d rows, want %d", len(rows), n)
	}
	return schelling.CityFromRows(rows)
}

func parseRow(text string) ([]schelling.Household, error) {
	var row []schelling.Household
	for _, field := range strings.Fields(text) {
		for _, ch := range field {
			h, ok := schelling.ParseHousehold(string(ch))
			if !ok {
				return nil, fmt.Errorf("unknown cell tag %q", ch)
			}
			row = append(row, h)
		}
	}
	return row, nil
}

// Write emits c in the space-separated form accepted by Read.
func Write(w io.Writer, c *schelling.City) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", c.Size())
	for _, row := range c.Rows() {
		for i, h := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(h.String())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Save writes c to path, replacing any existing file.
func Save(path string, c *schelling.City) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating grid file: %w", err)
	}
	if err := Write(f, c); err != nil {
		f.Close()
		return fmt.Errorf("writing grid file: %w", err)
	}
	return f.Close()
}
