package aspect

import (
	"context"
	"testing"
)

func nopAdvice(ctx context.Context, inv *Invocation) error { return nil }

func nopAround(next Operation) Operation { return next }

func TestSelectorMatching(t *testing.T) {
	cases := []struct {
		selector  string
		operation string
		want      bool
	}{
		{"user.logIn", "user.logIn", true},
		{"user.logIn", "user.logOut", false},
		{"user.*", "user.logIn", true},
		{"user.*", "user.logOut", true},
		{"user.*", "user.session.refresh", true},
		{"user.*", "user", false},
		{"user.*", "account.logIn", false},
		{"*", "user.logIn", true},
		{"*", "anything", true},
	}

	for _, tc := range cases {
		if got := selectorMatches(tc.selector, tc.operation); got != tc.want {
			t.Errorf("selectorMatches(%q, %q) = %v, want %v", tc.selector, tc.operation, got, tc.want)
		}
	}
}

func TestSelectorValidation(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register("a", "", Before, nopAdvice); err == nil {
		t.Error("expected error for empty selector")
	}
	if err := reg.Register("b", "user.*.logIn", Before, nopAdvice); err == nil {
		t.Error("expected error for embedded wildcard")
	}
	if err := reg.Register("c", "*", Before, nopAdvice); err != nil {
		t.Errorf("bare wildcard should be valid: %v", err)
	}
	if err := reg.Register("d", "user.*", Before, nopAdvice); err != nil {
		t.Errorf("trailing wildcard should be valid: %v", err)
	}
}

func TestRegisterRejectsAroundPhase(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("a", "user.*", Around, nopAdvice); err == nil {
		t.Error("expected error registering Around via Register")
	}
}

func TestRegisterRejectsNilAdvice(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("a", "user.*", Before, nil); err == nil {
		t.Error("expected error for nil advice")
	}
	if err := reg.RegisterAround("b", "user.*", nil); err == nil {
		t.Error("expected error for nil around advice")
	}
}

func TestDuplicateRegistrationIsNoOp(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register("log-before", "user.logIn", Before, nopAdvice); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Same name and phase, different selector: still a duplicate.
	if err := reg.Register("log-before", "user.*", Before, nopAdvice); err != nil {
		t.Fatalf("duplicate register should be a no-op, got: %v", err)
	}

	if reg.Len() != 1 {
		t.Errorf("expected 1 entry after duplicate registration, got %d", reg.Len())
	}

	// Same name under a different phase is a distinct registration.
	if err := reg.Register("log-before", "user.*", AfterSuccess, nopAdvice); err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", reg.Len())
	}
}

func TestResolveGroupsByPhaseInRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register("b2", "user.*", Before, nopAdvice)
	reg.Register("s1", "user.*", AfterSuccess, nopAdvice)
	reg.Register("b1", "user.logIn", Before, nopAdvice)
	reg.RegisterAround("w1", "user.*", nopAround)
	reg.Register("f1", "user.*", AfterFailure, nopAdvice)

	p := reg.resolve("user.logIn")

	wantBefore := []string{"b2", "b1"}
	if len(p.before) != len(wantBefore) {
		t.Fatalf("expected %d before entries, got %d", len(wantBefore), len(p.before))
	}
	for i, want := range wantBefore {
		if p.before[i].name != want {
			t.Errorf("before[%d] = %s, want %s", i, p.before[i].name, want)
		}
	}
	if len(p.afterSuccess) != 1 || p.afterSuccess[0].name != "s1" {
		t.Errorf("unexpected afterSuccess plan: %+v", p.afterSuccess)
	}
	if len(p.afterFailure) != 1 || p.afterFailure[0].name != "f1" {
		t.Errorf("unexpected afterFailure plan: %+v", p.afterFailure)
	}
	if len(p.around) != 1 || p.around[0].name != "w1" {
		t.Errorf("unexpected around plan: %+v", p.around)
	}
}

func TestResolveZeroMatchesIsValid(t *testing.T) {
	reg := NewRegistry()
	reg.Register("b1", "user.*", Before, nopAdvice)

	p := reg.resolve("account.create")
	if len(p.before)+len(p.afterSuccess)+len(p.afterFailure)+len(p.around) != 0 {
		t.Errorf("expected empty plan, got %+v", p)
	}
}

func TestNamesPreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register("first", "*", Before, nopAdvice)
	reg.RegisterAround("second", "*", nopAround)
	reg.Register("third", "*", AfterFailure, nopAdvice)

	names := reg.Names()
	want := []string{"first", "second", "third"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}
