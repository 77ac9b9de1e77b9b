package ingest

import (
	"strings"
	"testing"

	"datascope/domain/table"
	"datascope/internal/errors"
)

func TestParse_BasicCSV(t *testing.T) {
	raw := []byte("name,age,salary\nAlice,30,50000\nBob,25,60000\n")
	ds, err := Parse("people.csv", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if ds.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", ds.RowCount)
	}
	wantNames := []string{"name", "age", "salary"}
	gotNames := ds.ColumnNames()
	for i, w := range wantNames {
		if gotNames[i] != w {
			t.Errorf("column %d = %q, want %q", i, gotNames[i], w)
		}
	}
	if ds.ID.IsEmpty() {
		t.Error("dataset should be assigned an id")
	}
	if ds.SizeBytes <= 0 {
		t.Error("SizeBytes should be a positive estimate")
	}
}

func TestParse_DistinctIDsForIdenticalContent(t *testing.T) {
	raw := []byte("a\n1\n")
	d1, err := Parse("x.csv", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	d2, err := Parse("x.csv", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d1.ID == d2.ID {
		t.Error("identical uploads must still get distinct dataset ids")
	}
}

func TestParse_TSV(t *testing.T) {
	raw := []byte("a\tb\n1\tx\n2\ty\n")
	ds, err := Parse("data.tsv", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ds.ColumnCount() != 2 {
		t.Errorf("ColumnCount = %d, want 2", ds.ColumnCount())
	}
}

func TestParse_SniffsTabForUnknownExtension(t *testing.T) {
	raw := []byte("a\tb\n1\t2\n")
	ds, err := Parse("data.txt", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ds.ColumnCount() != 2 {
		t.Errorf("ColumnCount = %d, want 2 with sniffed tab", ds.ColumnCount())
	}
}

func TestParse_SniffsSemicolon(t *testing.T) {
	raw := []byte("a;b\n1;2\n")
	ds, err := Parse("data.txt", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ds.ColumnCount() != 2 {
		t.Errorf("ColumnCount = %d, want 2 with sniffed semicolon", ds.ColumnCount())
	}
}

func TestParse_CSVExtensionIgnoresSemicolons(t *testing.T) {
	// A .csv with semicolons inside a single comma-less field stays one column.
	raw := []byte("note\na;b;c\n")
	ds, err := Parse("data.csv", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ds.ColumnCount() != 1 {
		t.Errorf("ColumnCount = %d, want 1", ds.ColumnCount())
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("   \n  ")} {
		_, err := Parse("x.csv", raw)
		if !errors.IsCode(err, errors.CodeParseError) {
			t.Errorf("Parse(%q) error = %v, want PARSE_ERROR", raw, err)
		}
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	ds, err := Parse("x.csv", []byte("a,b,c\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ds.RowCount != 0 || ds.ColumnCount() != 3 {
		t.Errorf("RowCount=%d ColumnCount=%d, want 0 and 3", ds.RowCount, ds.ColumnCount())
	}
}

func TestParse_StripsBOM(t *testing.T) {
	raw := []byte("\xef\xbb\xbfa,b\n1,2\n")
	ds, err := Parse("x.csv", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := ds.ColumnNames()[0]; got != "a" {
		t.Errorf("first column = %q, want %q", got, "a")
	}
}

func TestNormalizeHeader_DuplicatesAndBlanks(t *testing.T) {
	got := normalizeHeader([]string{"price", "price", " qty ", "", "price"})
	want := []string{"price", "price.1", "qty", "Unnamed: 3", "price.2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("header %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizeHeader_DuplicateSkipsTakenSuffix(t *testing.T) {
	// A literal "price.1" column must not collide with the suffix given to
	// the repeated "price".
	got := normalizeHeader([]string{"price", "price.1", "price", "price"})
	want := []string{"price", "price.1", "price.2", "price.3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("header %d = %q, want %q", i, got[i], want[i])
		}
	}
	unique := make(map[string]bool)
	for _, n := range got {
		if unique[n] {
			t.Fatalf("duplicate column name %q survived normalization", n)
		}
		unique[n] = true
	}
}

func TestParse_RaggedRowsWithinTolerance(t *testing.T) {
	// One short row in twelve is under the tolerance and gets padded.
	var b strings.Builder
	b.WriteString("a,b,c\n")
	for i := 0; i < 11; i++ {
		b.WriteString("1,2,3\n")
	}
	b.WriteString("1,2\n")

	ds, err := Parse("x.csv", []byte(b.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, _ := ds.Column("c")
	if !c.Missing[ds.RowCount-1] {
		t.Error("padded cell of the short row should be missing")
	}
}

func TestParse_RaggedRowsBeyondTolerance(t *testing.T) {
	raw := []byte("a,b,c\n1,2\n3,4\n5,6,7\n")
	_, err := Parse("x.csv", raw)
	if !errors.IsCode(err, errors.CodeParseError) {
		t.Errorf("error = %v, want PARSE_ERROR for widely ragged input", err)
	}
}

func TestClassify_NumericRequiresEveryValueToParse(t *testing.T) {
	raw := []byte("v\n1\n2\nthree\n4\n")
	ds, err := Parse("x.csv", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, _ := ds.Column("v")
	if c.IsNumeric() {
		t.Error("column with an unparseable token must be categorical")
	}
	if c.DType != "text" {
		t.Errorf("DType = %q, want text", c.DType)
	}
}

func TestClassify_MissingTokens(t *testing.T) {
	raw := []byte("v\n1\nNA\nn/a\nNaN\nNULL\nnone\n\"\"\n7\n")
	ds, err := Parse("x.csv", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, _ := ds.Column("v")
	if !c.IsNumeric() {
		t.Fatal("missing markers must not break numeric classification")
	}
	if got := c.MissingCount(); got != 6 {
		t.Errorf("MissingCount = %d, want 6", got)
	}
	vals := c.NonMissing()
	if len(vals) != 2 || vals[0] != 1 || vals[1] != 7 {
		t.Errorf("NonMissing = %v, want [1 7]", vals)
	}
}

func TestClassify_IntegerVersusFloat(t *testing.T) {
	raw := []byte("i,f,e\n1,1.5,1e3\n2,2.0,2\n")
	ds, err := Parse("x.csv", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cases := []struct {
		col   string
		dtype string
	}{
		{"i", "integer"},
		{"f", "floating-point"},
		{"e", "floating-point"}, // scientific notation reads as float
	}
	for _, tc := range cases {
		c, _ := ds.Column(tc.col)
		if c.Type != table.Numeric {
			t.Errorf("%s: Type = %v, want numeric", tc.col, c.Type)
		}
		if c.DType != tc.dtype {
			t.Errorf("%s: DType = %q, want %q", tc.col, c.DType, tc.dtype)
		}
	}
}

func TestClassify_NonFiniteTokensAreNotNumeric(t *testing.T) {
	// strconv.ParseFloat accepts these, but a non-finite value has no legal
	// JSON encoding, so the column must classify categorical.
	for _, token := range []string{"inf", "+Inf", "-Infinity"} {
		raw := []byte("v\n1\n" + token + "\n2\n")
		ds, err := Parse("x.csv", raw)
		if err != nil {
			t.Fatalf("Parse with %q: %v", token, err)
		}
		c, _ := ds.Column("v")
		if c.IsNumeric() {
			t.Errorf("column containing %q classified numeric", token)
		}
		if c.DType != "text" {
			t.Errorf("column containing %q: DType = %q, want text", token, c.DType)
		}
	}
}

func TestClassify_AllMissingColumn(t *testing.T) {
	raw := []byte("v\nNA\n\nnull\n")
	ds, err := Parse("x.csv", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, _ := ds.Column("v")
	if !c.IsNumeric() || c.DType != "floating-point" {
		t.Errorf("all-missing column: Type=%v DType=%q, want numeric floating-point", c.Type, c.DType)
	}
}

func TestParse_TrimsCellWhitespace(t *testing.T) {
	raw := []byte("v\n 42 \n")
	ds, err := Parse("x.csv", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, _ := ds.Column("v")
	if !c.IsNumeric() {
		t.Error("padded numeric cell should still classify numeric")
	}
	if c.Raw[0] != "42" {
		t.Errorf("Raw[0] = %q, want trimmed %q", c.Raw[0], "42")
	}
}
