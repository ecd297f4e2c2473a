package output

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestFprint(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Fprint(&buf, FormatJSON, sample{Name: "letterhead", Count: 3}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"name": "letterhead"`) {
			t.Errorf("json output = %q", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Fprint(&buf, FormatYAML, sample{Name: "letterhead", Count: 3}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "name: letterhead") {
			t.Errorf("yaml output = %q", buf.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := Fprint(&bytes.Buffer{}, Format("xml"), sample{}); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestSetFormat(t *testing.T) {
	defer SetFormat("yaml")

	SetFormat("json")
	if GetFormat() != FormatJSON {
		t.Errorf("format = %s, want json", GetFormat())
	}
	SetFormat("table")
	if GetFormat() != FormatYAML {
		t.Errorf("unknown flag value: format = %s, want yaml fallback", GetFormat())
	}
}
