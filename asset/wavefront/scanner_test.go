package wavefront

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func scanAll(t *testing.T, input string) ([]directive, error) {
	t.Helper()

	var out []directive
	scanner := newLineScanner(context.Background(), "test.obj", strings.NewReader(input))
	for scanner.Scan() {
		out = append(out, scanner.Directive())
	}
	return out, scanner.Err()
}

func TestLineScanner(t *testing.T) {
	input := "\uFEFF# header\n" +
		"v 1 2 3 # trailing comment\n" +
		"\n" +
		"   \t\n" +
		"f 1 \\\n" +
		"  2 3\n" +
		"g\n" +
		"vn 0 0 1\r\n"

	type expDirective struct {
		keyword string
		fields  []string
		line    int
	}
	expList := []expDirective{
		{"v", []string{"1", "2", "3"}, 2},
		{"f", []string{"1", "2", "3"}, 5},
		{"g", []string{}, 7},
		{"vn", []string{"0", "0", "1"}, 8},
	}

	directives, err := scanAll(t, input)
	if err != nil {
		t.Fatal(err)
	}
	if len(directives) != len(expList) {
		t.Fatalf("expected %d directives; got %d", len(expList), len(directives))
	}
	for index, exp := range expList {
		d := directives[index]
		if d.keyword != exp.keyword {
			t.Errorf("[directive %d] expected keyword %q; got %q", index, exp.keyword, d.keyword)
		}
		if !reflect.DeepEqual(d.fields(), exp.fields) {
			t.Errorf("[directive %d] expected fields %v; got %v", index, exp.fields, d.fields())
		}
		if d.line != exp.line {
			t.Errorf("[directive %d] expected line %d; got %d", index, exp.line, d.line)
		}
	}
}

func TestLineScannerCommentBeforeContinuation(t *testing.T) {
	directives, err := scanAll(t, "f 1 2 \\ # more below\n3 4\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive; got %d", len(directives))
	}
	if exp := []string{"1", "2", "3", "4"}; !reflect.DeepEqual(directives[0].fields(), exp) {
		t.Fatalf("expected fields %v; got %v", exp, directives[0].fields())
	}
}

func TestLineScannerTruncatedContinuation(t *testing.T) {
	_, err := scanAll(t, "v 1 2 3\nf 1 2 \\\n")
	if !errors.Is(err, ErrEmptyOrTruncatedFile) {
		t.Fatalf("expected ErrEmptyOrTruncatedFile; got %v", err)
	}

	var pErr *ParseError
	if !errors.As(err, &pErr) || pErr.Line != 2 {
		t.Fatalf("expected error to point to line 2; got %v", err)
	}
}

func TestLineScannerOnlyComments(t *testing.T) {
	directives, err := scanAll(t, "# nothing\n\n#to see here\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(directives) != 0 {
		t.Fatalf("expected no directives; got %d", len(directives))
	}
}

func TestLineScannerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := newLineScanner(ctx, "test.obj", strings.NewReader("v 1 2 3\n"))
	if scanner.Scan() {
		t.Fatal("expected Scan to fail with a cancelled context")
	}
	if !errors.Is(scanner.Err(), context.Canceled) {
		t.Fatalf("expected context.Canceled; got %v", scanner.Err())
	}
}

func TestLineScannerLongLine(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("f")
	for i := 0; i < 100000; i++ {
		sb.WriteString(" 1")
	}
	sb.WriteByte('\n')

	directives, err := scanAll(t, sb.String())
	if err != nil {
		t.Fatal(err)
	}
	if len(directives) != 1 || len(directives[0].fields()) != 100000 {
		t.Fatalf("expected a single directive with 100000 fields")
	}
}
