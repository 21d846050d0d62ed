package menu

import (
	"strconv"
	"strings"
	"testing"
)

func TestByNumber(t *testing.T) {
	m := New(Seed())

	opt, ok := m.ByNumber(3)
	if !ok {
		t.Fatal("expected option 3 to exist")
	}
	if opt.ID != "special_occasion" {
		t.Fatalf("unexpected option id: %s", opt.ID)
	}
	if opt.Action != ActionRequestInput {
		t.Fatalf("unexpected action: %s", opt.Action)
	}
}

func TestByNumberOutOfRange(t *testing.T) {
	m := New(Seed())

	for _, n := range []int{0, -1, m.Len() + 1, 99} {
		if _, ok := m.ByNumber(n); ok {
			t.Fatalf("expected no option for %d", n)
		}
	}
}

func TestRenderListsAllOptions(t *testing.T) {
	m := New(Seed())
	body := m.Render()

	for i, opt := range m.Options() {
		if !strings.Contains(body, opt.Title) {
			t.Fatalf("rendered menu missing title %q", opt.Title)
		}
		if !strings.Contains(body, "*"+strconv.Itoa(i+1)+"-*") {
			t.Fatalf("rendered menu missing number %d", i+1)
		}
	}
}
