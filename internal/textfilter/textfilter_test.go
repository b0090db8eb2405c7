package textfilter

import (
	"regexp"
	"testing"
)

func testStrings() []string {
	return []string{
		"spam", "spams", "spam01", "SpAm200",
		"spam_eggs",
		"egg", "eggs", "eggs01", "egg01a", "EgG201", "eGgs100",
	}
}

func TestFilterInPlace(t *testing.T) {
	tests := []struct {
		name string
		p    Predicate
		want []string
	}{
		{
			name: "literal single",
			p:    Literal("eggs"),
			want: []string{"spam_eggs", "eggs", "eggs01"},
		},
		{
			name: "literal conjunction",
			p:    All(Literal("eggs"), Literal("spam")),
			want: []string{"spam_eggs"},
		},
		{
			name: "literal case sensitive no match",
			p:    Literal("EGGS"),
			want: []string{},
		},
		{
			name: "literal conjunction no match",
			p:    All(Literal("201"), Literal("spam")),
			want: []string{},
		},
		{
			name: "pattern single",
			p:    Pattern(regexp.MustCompile(`\D\d\d$`)),
			want: []string{"spam01", "eggs01"},
		},
		{
			name: "pattern no match",
			p:    Pattern(regexp.MustCompile(`\D\d\d\d\d$`)),
			want: []string{},
		},
		{
			name: "pattern conjunction",
			p:    All(Pattern(regexp.MustCompile(`\D\d\d$`)), Pattern(regexp.MustCompile(`^e`))),
			want: []string{"eggs01"},
		},
		{
			name: "mixed conjunction",
			p:    All(Literal("egg"), Pattern(regexp.MustCompile(`^s`))),
			want: []string{"spam_eggs"},
		},
		{
			name: "mixed conjunction no match",
			p:    All(Literal("spam"), Pattern(regexp.MustCompile(`^e`))),
			want: []string{},
		},
		{
			name: "empty conjunction keeps everything",
			p:    All(),
			want: testStrings(),
		},
		{
			name: "nil predicate keeps everything",
			p:    nil,
			want: testStrings(),
		},
		{
			name: "empty literal keeps everything",
			p:    Literal(""),
			want: testStrings(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := testStrings()
			FilterInPlace(&items, tt.p)
			assertStrings(t, tt.want, items)
		})
	}
}

func TestFilterInPlaceIdempotent(t *testing.T) {
	items := testStrings()
	p := Literal("eggs")

	FilterInPlace(&items, p)
	once := append([]string(nil), items...)
	FilterInPlace(&items, p)

	assertStrings(t, once, items)
}

func TestFilterInPlaceConjunctionEquivalence(t *testing.T) {
	p1 := Literal("egg")
	p2 := Pattern(regexp.MustCompile(`\d$`))

	combined := testStrings()
	FilterInPlace(&combined, All(p1, p2))

	sequential := testStrings()
	FilterInPlace(&sequential, p1)
	FilterInPlace(&sequential, p2)

	assertStrings(t, sequential, combined)
}

func TestFilterInPlaceNilSlice(t *testing.T) {
	// Must not panic.
	FilterInPlace(nil, Literal("x"))
}

func assertStrings(t *testing.T, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("length mismatch: want %v, got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("element %d: want %q, got %q", i, want[i], got[i])
		}
	}
}
