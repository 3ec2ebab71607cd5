package gridfile

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"schelling/internal/sims/schelling"
)

func TestReadSpacedAndPacked(t *testing.T) {
	spaced, err := Read(strings.NewReader("3\nM B F\nF M B\nB F M\n"))
	if err != nil {
		t.Fatalf("Read spaced: %v", err)
	}
	packed, err := Read(strings.NewReader("3\n\nMBF\nFMB\nBFM\n"))
	if err != nil {
		t.Fatalf("Read packed: %v", err)
	}
	if !spaced.Equal(packed) {
		t.Fatal("spaced and packed grids differ")
	}
	if spaced.At(schelling.Location{Row: 0, Col: 1}) != schelling.TypeB {
		t.Fatal("cell (0,1) should be TypeB")
	}
	if got := spaced.Count(); got != [3]int{3, 3, 3} {
		t.Fatalf("counts = %v", got)
	}
}

func TestReadRejectsMalformedGrids(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"bad size":      "x\nMB\nFF\n",
		"short row":     "2\nM\nFF\n",
		"missing row":   "2\nMB\n",
		"extra row":     "2\nMB\nFF\nBB\n",
		"unknown tag":   "2\nMX\nFF\n",
		"zero size":     "0\n",
		"negative size": "-2\nMB\nFF\n",
	}
	for name, input := range cases {
		if _, err := Read(strings.NewReader(input)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c, err := Read(strings.NewReader("2\nM B\nF F\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	path := filepath.Join(t.TempDir(), "city.txt")
	if err := Save(path, c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Equal(c) {
		t.Fatal("loaded city differs")
	}

	var buf bytes.Buffer
	if err := Write(&buf, c); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "2\nM B\nF F\n" {
		t.Fatalf("Write produced %q", buf.String())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
