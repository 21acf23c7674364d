package task

import "fmt"

// Form is a plural class for a task count.
type Form int

const (
	// FormOne covers counts ending in 1, except those ending in 11.
	FormOne Form = iota
	// FormFew covers counts ending in 2-4, except those ending in 12-14.
	FormFew
	// FormMany covers everything else.
	FormMany
)

// PluralForm classifies a count using the three-way rule the app ships
// with: remainder mod 10 and mod 100 decide the class. The rule is kept
// independent of the display language so translated count labels stay
// correct.
func PluralForm(n int) Form {
	if n < 0 {
		n = -n
	}
	r10 := n % 10
	r100 := n % 100

	switch {
	case r10 == 1 && r100 != 11:
		return FormOne
	case r10 >= 2 && r10 <= 4 && !(r100 >= 12 && r100 <= 14):
		return FormFew
	default:
		return FormMany
	}
}

// Pluralize picks the word form matching the count's plural class.
func Pluralize(n int, one, few, many string) string {
	switch PluralForm(n) {
	case FormOne:
		return one
	case FormFew:
		return few
	default:
		return many
	}
}

// CountLabel renders the "N tasks" label with the default English forms.
func CountLabel(n int) string {
	return fmt.Sprintf("%d %s", n, Pluralize(n, "task", "tasks", "tasks"))
}
