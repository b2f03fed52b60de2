package errors

import (
	"strings"
	"testing"
)

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatSVG, FormatDOT, FormatJSON, FormatPNG} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	for _, f := range []string{"", "pdf", "SVG"} {
		if err := ValidateFormat(f); !Is(err, ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) = %v, want INVALID_FORMAT", f, err)
		}
	}
}

func TestValidateDatasetName(t *testing.T) {
	valid := []string{"cluster", "ring-3", "grid10"}
	for _, name := range valid {
		if err := ValidateDatasetName(name); err != nil {
			t.Errorf("ValidateDatasetName(%q) = %v", name, err)
		}
	}

	invalid := []string{"", "Cluster", "a b", "x/y", strings.Repeat("a", 65)}
	for _, name := range invalid {
		if err := ValidateDatasetName(name); !Is(err, ErrCodeInvalidDataset) {
			t.Errorf("ValidateDatasetName(%q) = %v, want INVALID_DATASET", name, err)
		}
	}
}

func TestValidatePath(t *testing.T) {
	valid := []string{"out.svg", "renders/graph.png", "/tmp/layout.json"}
	for _, p := range valid {
		if err := ValidatePath(p); err != nil {
			t.Errorf("ValidatePath(%q) = %v", p, err)
		}
	}

	invalid := []string{"", "../etc/passwd", "a\x00b", strings.Repeat("x", 501)}
	for _, p := range invalid {
		if err := ValidatePath(p); !Is(err, ErrCodeInvalidPath) {
			t.Errorf("ValidatePath(%q) = %v, want INVALID_PATH", p, err)
		}
	}
}

func TestValidateNodeID(t *testing.T) {
	if err := ValidateNodeID("node-42"); err != nil {
		t.Errorf("ValidateNodeID(node-42) = %v", err)
	}
	invalid := []string{"", "a\nb", strings.Repeat("i", 257)}
	for _, id := range invalid {
		if err := ValidateNodeID(id); !Is(err, ErrCodeInvalidGraph) {
			t.Errorf("ValidateNodeID(%q) = %v, want INVALID_GRAPH", id, err)
		}
	}
}
