package textstats

import (
	"slices"
	"testing"
)

func TestCount(t *testing.T) {
	got := Count([]string{"a", "b", "a"})
	if len(got) != 2 || got["a"] != 2 || got["b"] != 1 {
		t.Fatalf("Count = %v", got)
	}
}

func TestTopKBreaksTiesByToken(t *testing.T) {
	tokens := []string{"b", "a", "c", "a", "b", "d"}
	tests := []struct {
		k    int
		want []string
	}{
		{0, []string{}},
		{1, []string{"a"}},
		{2, []string{"a", "b"}},
		{3, []string{"a", "b", "c"}},
		{10, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		got, err := TopK(tokens, tt.k)
		if err != nil {
			t.Fatalf("TopK(%d): %v", tt.k, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("TopK(%d) = %v, want %v", tt.k, got, tt.want)
		}
	}
	if _, err := TopK(tokens, -1); err == nil {
		t.Error("TopK(-1) should fail")
	}
}

func TestMinCount(t *testing.T) {
	got, err := MinCount([]string{"b", "a", "c", "a", "b", "d"}, 2)
	if err != nil {
		t.Fatalf("MinCount: %v", err)
	}
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("MinCount = %v", got)
	}
	all, _ := MinCount([]string{"x", "y"}, 0)
	if len(all) != 2 {
		t.Fatalf("MinCount(0) = %v", all)
	}
	if _, err := MinCount([]string{"x"}, -1); err == nil {
		t.Fatal("MinCount(-1) should fail")
	}
}

func TestSalient(t *testing.T) {
	docs := [][]string{
		{"red", "red", "blue"},
		{"blue", "green"},
		{"red", "yellow", "yellow"},
		{},
	}
	got := Salient(docs, 0.6)
	want := [][]string{{"red"}, {"blue", "green"}, {"yellow"}, {}}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Fatalf("doc %d salient = %v, want %v", i, got[i], want[i])
		}
	}

	low := Salient(docs, 0.3)
	if !slices.Equal(low[0], []string{"blue", "red"}) {
		t.Fatalf("doc 0 salient at 0.3 = %v", low[0])
	}
}
