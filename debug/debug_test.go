package debug

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/corelang/corelang/ast"
	"github.com/corelang/corelang/parser"
	"github.com/corelang/corelang/token"
)

func TestToString(t *testing.T) {
	tests := []struct{ name, input, expected string }{
		{"ValDef", "val x = 5", "val x = 5"},
		{"BinaryOp", "1 + 2 * 3", "1.+(2.*(3))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parser.New(tt.input)
			stats := p.ParseStats()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("parser errors: %v", errs)
			}
			if len(stats) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(stats))
			}
			if got := ToString(stats[0]); got != tt.expected {
				t.Errorf("ToString() got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	tree := &ast.Literal{
		Base:  ast.Base{Pos: token.Position{}},
		Kind:  token.INT,
		Value: int64(5),
	}

	output := captureOutput(func() {
		Print(tree)
	})

	if output == "" {
		t.Error("Print() produced no output")
	}

	expectedStrings := []string{"ast.Literal", "Value", "5"}
	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Print() output missing expected string %q", expected)
		}
	}
}

// captureOutput captures stdout during function execution
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}
