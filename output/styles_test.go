package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	if styles == nil {
		t.Fatal("NewStyles should return non-nil Styles")
	}

	if styles.output == nil {
		t.Error("Styles should have non-nil output")
	}
}

func TestStylesContainMessage(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	tests := []struct {
		name  string
		style func(string) string
		text  string
	}{
		{name: "Success", style: styles.Success, text: "saved report"},
		{name: "Error", style: styles.Error, text: "lookup failed"},
		{name: "PayoutID", style: styles.PayoutID, text: "po_1Nabc"},
		{name: "Amount", style: styles.Amount, text: "14.55 EUR"},
		{name: "Keyword", style: styles.Keyword, text: "report"},
		{name: "Dim", style: styles.Dim, text: "secondary"},
		{name: "Warning", style: styles.Warning, text: "slow stage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.style(tt.text)
			if !strings.Contains(result, tt.text) {
				t.Errorf("%s() result should contain text, got: %s", tt.name, result)
			}
		})
	}
}
