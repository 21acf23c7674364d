package task

import (
	"testing"
	"time"
)

func TestPlaceholderTitle(t *testing.T) {
	if got := PlaceholderTitle(7); got != "Task 7" {
		t.Errorf("PlaceholderTitle(7): got %q, want %q", got, "Task 7")
	}
}

func TestFormatCreationDate(t *testing.T) {
	date := time.Date(2025, time.August, 16, 14, 30, 0, 0, time.UTC)
	if got := FormatCreationDate(date); got != "16/08/25" {
		t.Errorf("FormatCreationDate: got %q, want %q", got, "16/08/25")
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  int
	}{
		{name: "empty list", tasks: nil, want: 1},
		{name: "sequential ids", tasks: []Task{{ID: 1}, {ID: 2}, {ID: 3}}, want: 4},
		{name: "gaps", tasks: []Task{{ID: 5}, {ID: 2}}, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.tasks); got != tt.want {
				t.Errorf("NextID: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPluralForm(t *testing.T) {
	tests := []struct {
		n    int
		want Form
	}{
		{0, FormMany},
		{1, FormOne},
		{2, FormFew},
		{4, FormFew},
		{5, FormMany},
		{10, FormMany},
		{11, FormMany},
		{12, FormMany},
		{14, FormMany},
		{21, FormOne},
		{22, FormFew},
		{25, FormMany},
		{100, FormMany},
		{101, FormOne},
		{111, FormMany},
		{112, FormMany},
		{122, FormFew},
	}

	for _, tt := range tests {
		if got := PluralForm(tt.n); got != tt.want {
			t.Errorf("PluralForm(%d): got %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "one"},
		{22, "few"},
		{11, "many"},
		{5, "many"},
	}

	for _, tt := range tests {
		if got := Pluralize(tt.n, "one", "few", "many"); got != tt.want {
			t.Errorf("Pluralize(%d): got %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCountLabel(t *testing.T) {
	if got := CountLabel(1); got != "1 task" {
		t.Errorf("CountLabel(1): got %q, want %q", got, "1 task")
	}
	if got := CountLabel(5); got != "5 tasks" {
		t.Errorf("CountLabel(5): got %q, want %q", got, "5 tasks")
	}
}
