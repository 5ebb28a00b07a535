package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
	}{
		{
			name:    "with filename",
			pos:     NewPos("test.swift", 10, 5),
			wantStr: "test.swift:10:5",
		},
		{
			name:    "without filename",
			pos:     NewPos("", 10, 5),
			wantStr: "10:5",
		},
		{
			name:    "line 1 col 1",
			pos:     NewPos("main.swift", 1, 1),
			wantStr: "main.swift:1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.wantStr {
				t.Errorf("Pos.String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestPosIsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   Pos
		valid bool
	}{
		{"valid position", NewPos("test.swift", 1, 1), true},
		{"valid position line 100", NewPos("", 100, 50), true},
		{"invalid - zero line", NewPos("test.swift", 0, 1), false},
		{"invalid - zero value", Pos{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.valid {
				t.Errorf("Pos.IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestRangeString(t *testing.T) {
	tests := []struct {
		name string
		rng  Range
		want string
	}{
		{"sentinel", NoRange, "<unknown>"},
		{"no file", MakeRange(NewPos("", 1, 1), NewPos("", 1, 11)), "1:1-1:11"},
		{"with file", MakeRange(NewPos("a.swift", 2, 3), NewPos("a.swift", 4, 1)), "a.swift:2:3-4:1"},
		{"invalid with file", MakeRange(NewPos("a.swift", 0, 0), NewPos("a.swift", 0, 0)), "a.swift:0:0-0:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rng.String(); got != tt.want {
				t.Errorf("Range.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	outer := MakeRange(NewPos("f", 1, 1), NewPos("f", 3, 5))
	inner := MakeRange(NewPos("f", 2, 1), NewPos("f", 3, 5))
	if !outer.Contains(inner) {
		t.Errorf("%v should contain %v", outer, inner)
	}
	if inner.Contains(outer) {
		t.Errorf("%v should not contain %v", inner, outer)
	}
	if outer.Contains(NoRange) {
		t.Error("no range is contained in the sentinel")
	}
}
