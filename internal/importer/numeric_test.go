package importer

import "testing"

func TestNormalizeDecimalComma(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"indonesian thousands and decimal", "1.234.567,89", "1234567.89"},
		{"dot-grouped thousands only", "1.234.567", "1234567"},
		{"decimal comma only", "1500,5", "1500.5"},
		{"thousands without decimal", "2,500", "2500"},
		{"plain decimal left alone", "1234.5", "1234.5"},
		{"plain integer left alone", "40000", "40000"},
		{"empty string", "", ""},
		{"unparseable stays as-is", "1,2,3,", "1,2,3,"},
		{"text stays as-is", "n/a", "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDecimalComma(tt.in); got != tt.want {
				t.Errorf("NormalizeDecimalComma(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
