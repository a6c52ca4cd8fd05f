package picks

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		cell    string
		want    float64
		outcome Outcome
	}{
		{cell: "[1234]", want: 1234, outcome: Decoded},
		{cell: " [12.5, 99] ", want: 12.5, outcome: Decoded},
		{cell: "87", want: 87, outcome: Decoded},
		{cell: "null", outcome: SkipNull},
		{cell: "[null]", outcome: SkipNull},
		{cell: "[]", outcome: SkipEmpty},
		{cell: "", outcome: SkipEmpty},
		{cell: `["x"]`, outcome: SkipNonNumeric},
		{cell: "true", outcome: SkipNonNumeric},
		{cell: `{"t": 3}`, outcome: SkipNonNumeric},
		{cell: "[12", outcome: SkipMalformed},
		{cell: "nan", outcome: SkipMalformed},
	} {
		got, outcome := Decode(tc.cell)
		if outcome != tc.outcome {
			t.Fatalf("Decode(%q) outcome = %v, want %v", tc.cell, outcome, tc.outcome)
		}

		if outcome == Decoded && got != tc.want {
			t.Fatalf("Decode(%q) = %v, want %v", tc.cell, got, tc.want)
		}
	}
}

func TestRangeAdmits(t *testing.T) {
	open := Range{}
	for _, v := range []float64{-1e9, 0, 1e9} {
		if !open.Admits(v) {
			t.Fatalf("unbounded range rejects %v", v)
		}
	}

	r := Range{Min: At(10), Max: At(20)}
	for _, tc := range []struct {
		v    float64
		want bool
	}{
		{v: 10, want: false},
		{v: 10.5, want: true},
		{v: 19, want: true},
		{v: 20, want: false},
		{v: 25, want: false},
	} {
		if got := r.Admits(tc.v); got != tc.want {
			t.Fatalf("Admits(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}

	lower := Range{Min: At(0)}
	if lower.Admits(0) || !lower.Admits(1e12) {
		t.Fatal("lower-only range mishandled")
	}
}

func TestRangeEmpty(t *testing.T) {
	if (Range{Min: At(5), Max: At(5)}).Empty() != true {
		t.Fatal("(5, 5) should be empty")
	}

	if (Range{Min: At(5)}).Empty() {
		t.Fatal("half-open range should not be empty")
	}
}

func TestBoundString(t *testing.T) {
	if got := Unbounded().String(); got != "unbounded" {
		t.Fatalf("Unbounded().String() = %q", got)
	}

	if got := At(-3).String(); got != "-3" {
		t.Fatalf("At(-3).String() = %q", got)
	}
}

func TestSelectKeepsReceiverOffsets(t *testing.T) {
	cells := []string{"[100]", "null", "[]", "[130]", "[5000]", "[150]"}

	s, rep := SelectWithReport(cells, 4, Range{Min: At(0), Max: At(1000)})

	wantOffsets := []int{4, 7, 9}
	wantTimes := []float64{100, 130, 150}

	if len(s.Offsets) != len(wantOffsets) {
		t.Fatalf("offsets = %v, want %v", s.Offsets, wantOffsets)
	}

	for i := range wantOffsets {
		if s.Offsets[i] != wantOffsets[i] || s.Times[i] != wantTimes[i] {
			t.Fatalf("pick %d = (%d, %v), want (%d, %v)", i, s.Offsets[i], s.Times[i], wantOffsets[i], wantTimes[i])
		}
	}

	if rep.Total != 6 || rep.Kept != 3 || rep.OutOfRange != 1 || rep.Dropped() != 3 {
		t.Fatalf("report = %+v", rep)
	}

	if rep.Skipped[SkipNull] != 1 || rep.Skipped[SkipEmpty] != 1 {
		t.Fatalf("skipped = %v", rep.Skipped)
	}
}

func TestSelectRangeFilter(t *testing.T) {
	cells := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		cells = append(cells, "["+strings.Repeat("1", 1+i%4)+"]")
	}

	r := Range{Min: At(1), Max: At(1111)}
	s := Select(cells, 1, r)

	for i, v := range s.Times {
		if !(v > 1 && v < 1111) {
			t.Fatalf("pick %d = %v escaped range", i, v)
		}

		if s.Offsets[i] < 1 {
			t.Fatalf("offset %d = %d, want >= 1", i, s.Offsets[i])
		}
	}

	if s.Len() == 0 {
		t.Fatal("expected some picks to survive")
	}
}

func TestSelectEmpty(t *testing.T) {
	s := Select(nil, 1, Range{})
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
}

func TestSeriesLastConcat(t *testing.T) {
	a := Series{Offsets: []int{1, 2}, Times: []float64{10, 20}}
	b := Series{Offsets: []int{3}, Times: []float64{30}}

	got := a.Last().Concat(b)
	if got.Len() != 2 || got.Offsets[0] != 2 || got.Times[1] != 30 {
		t.Fatalf("Last().Concat = %+v", got)
	}

	if (Series{}).Last().Len() != 0 {
		t.Fatal("Last of empty series should be empty")
	}

	// Concat must not alias its inputs.
	got.Times[0] = -1
	if a.Times[1] != 20 {
		t.Fatal("Concat aliased its receiver")
	}
}

func TestReadTable(t *testing.T) {
	in := "\ufeffidx,its_pred,itp_pred,extra\n0,[20],[10],x\n1,null,[11],y\n2,[],\"[12]\",z\n"

	tab, err := ReadTable(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}

	if tab.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tab.Len())
	}

	if tab.P[2] != "[12]" || tab.S[0] != "[20]" || tab.S[1] != "null" {
		t.Fatalf("table = %+v", tab)
	}

	p, s, err := tab.Source(2, 1)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}

	if p[0] != "[11]" || s[0] != "null" {
		t.Fatalf("Source(2, 1) = %v, %v", p, s)
	}

	if _, _, err := tab.Source(2, 2); !errors.Is(err, ErrShortTable) {
		t.Fatalf("Source(2, 2) err = %v, want ErrShortTable", err)
	}

	if _, _, err := tab.Source(0, 2); !errors.Is(err, ErrInvalidSource) {
		t.Fatalf("Source(0, 2) err = %v, want ErrInvalidSource", err)
	}
}

func TestReadTableMissingColumn(t *testing.T) {
	_, err := ReadTable(strings.NewReader("itp_pred\n[1]\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}

	_, err = ReadTable(strings.NewReader(""))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("empty input err = %v, want ErrMissingColumn", err)
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []int{1, -2}, []int{3, 4}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	if got, want := buf.String(), "itp,its\n1,3\n-2,4\n"; got != want {
		t.Fatalf("WriteCSV = %q, want %q", got, want)
	}

	if err := WriteCSV(&buf, []int{1}, nil); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestWriteCSVFileReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "label_time.csv")

	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteCSVFile(path, []int{7}, []int{9}); err != nil {
		t.Fatalf("WriteCSVFile: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(got) != "itp,its\n7,9\n" {
		t.Fatalf("file = %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWriteCSVFileFailureKeepsOld(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "label_time.csv")

	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteCSVFile(path, []int{1, 2}, []int{1}); err == nil {
		t.Fatal("expected length mismatch error")
	}

	got, _ := os.ReadFile(path)
	if string(got) != "old" {
		t.Fatalf("file = %q, want untouched", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}
