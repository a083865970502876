package output

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/kernelprune/internal/dpkg"
	"github.com/blackwell-systems/kernelprune/internal/kernel"
)

func sampleGroups() kernel.Groups {
	return kernel.Classify([]dpkg.Entry{
		{Status: "ii ", Name: "linux-image-5.10.0-21-amd64", Version: "5.10.162-1"},
		{Status: "ii ", Name: "linux-image-5.10.0-20-amd64", Version: "5.10.158-2"},
		{Status: "ii ", Name: "gnumach-image-1.8-486", Version: "2:1.8+git20201129-1"},
		{Status: "ii ", Name: "linux-image-amd64", Version: "5.10.162-1"},
	}, "5.10.0-21-amd64")
}

func TestRenderKernelTable(t *testing.T) {
	out := RenderKernelTable(sampleGroups(), false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 7 {
		t.Fatalf("expected 7 lines (header, rule, 2 families, 3 rows), got %d:\n%s", len(lines), out)
	}

	if !strings.HasPrefix(lines[0], "Package") || !strings.HasSuffix(lines[0], "Status") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "─") {
		t.Errorf("expected rule line, got %q", lines[1])
	}
	if lines[2] != "linux-image" {
		t.Errorf("first family header = %q, want linux-image", lines[2])
	}
	if !strings.Contains(lines[3], "linux-image-5.10.0-21-amd64") || !strings.HasSuffix(lines[3], "booted") {
		t.Errorf("booted row = %q", lines[3])
	}
	if !strings.Contains(lines[4], "linux-image-5.10.0-20-amd64") || !strings.HasSuffix(lines[4], "unused") {
		t.Errorf("unused row = %q", lines[4])
	}
	if lines[5] != "gnumach-image" {
		t.Errorf("second family header = %q, want gnumach-image", lines[5])
	}
	if strings.Contains(out, "linux-image-amd64") {
		t.Error("meta-package should not appear in the table")
	}
}

func TestRenderKernelTable_ColumnsAligned(t *testing.T) {
	out := RenderKernelTable(sampleGroups(), false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	col := strings.Index(lines[0], "Kernel")
	for _, i := range []int{3, 4, 6} {
		if lines[i][col-2:col] != "  " {
			t.Errorf("row %d not aligned with Kernel column: %q", i, lines[i])
		}
	}
	if !strings.HasPrefix(lines[3][col:], "5.10.0-21-amd64") {
		t.Errorf("kernel column misaligned in %q", lines[3])
	}
	if !strings.HasPrefix(lines[6][col:], "1.8-486") {
		t.Errorf("kernel column misaligned in %q", lines[6])
	}
}

func TestRenderKernelTable_Empty(t *testing.T) {
	out := RenderKernelTable(kernel.Groups{}, false)
	if out != "No kernel packages found.\n" {
		t.Errorf("unexpected output for empty groups: %q", out)
	}
}

func TestRenderKernelTable_Color(t *testing.T) {
	out := RenderKernelTable(sampleGroups(), true)
	if !strings.Contains(out, "\033[") {
		t.Error("expected ANSI codes when color is enabled")
	}
}
