package ident

import "testing"

func TestExtract_Truncation(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"eight digits drops five", "img00012345.jpg", "000"},
		{"six digits drops five", "123456.jpg", "1"},
		{"exactly five kept whole", "12345.jpg", "12345"},
		{"fewer than five kept whole", "42.jpg", "42"},
		{"single digit", "7.jpg", "7"},
		{"prefix ignored", "scan_a_00020002.jpg", "000"},
		{"long run", "000123456789.jpg", "0001234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.filename)
			if !ok {
				t.Fatalf("Extract(%q) not ok, want %q", tt.filename, tt.want)
			}
			if got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestExtract_NoIdentifier(t *testing.T) {
	tests := []string{
		"photo_final.jpg",
		"photo.png",
		"12345.jpeg",
		"12345.JPG", // extension case-sensitive here; filter happens upstream
		"123abc.jpg",
		"photo.jpg",
		"",
		"12345",
	}

	for _, filename := range tests {
		t.Run(filename, func(t *testing.T) {
			got, ok := Extract(filename)
			if ok {
				t.Errorf("Extract(%q) = %q, want no identifier", filename, got)
			}
		})
	}
}

func TestExtract_DigitsMustTouchExtension(t *testing.T) {
	if got, ok := Extract("001_copy.jpg"); ok {
		t.Errorf("Extract(%q) = %q, want no identifier", "001_copy.jpg", got)
	}
	// Only the run adjacent to .jpg counts, not earlier digits.
	got, ok := Extract("99file00012345.jpg")
	if !ok || got != "000" {
		t.Errorf("Extract(99file00012345.jpg) = %q, %v, want %q, true", got, ok, "000")
	}
}
