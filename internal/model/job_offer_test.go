package model

import "testing"

func TestCanTransition_Valid(t *testing.T) {
	cases := []struct {
		from, to string
	}{
		{StatusDraft, StatusActive},
		{StatusDraft, StatusClosed},
		{StatusActive, StatusPaused},
		{StatusActive, StatusClosed},
		{StatusPaused, StatusActive},
		{StatusPaused, StatusClosed},
	}
	for _, c := range cases {
		if !CanTransition(c.from, c.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", c.from, c.to)
		}
	}
}

func TestCanTransition_Invalid(t *testing.T) {
	cases := []struct {
		from, to string
	}{
		{StatusClosed, StatusActive},
		{StatusClosed, StatusDraft},
		{StatusClosed, StatusPaused},
		{StatusActive, StatusDraft},
		{StatusPaused, StatusDraft},
		{StatusDraft, StatusPaused},
	}
	for _, c := range cases {
		if CanTransition(c.from, c.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", c.from, c.to)
		}
	}
}

func TestCanTransition_SameStatusIsNoOp(t *testing.T) {
	for _, s := range []string{StatusDraft, StatusActive, StatusPaused, StatusClosed} {
		if !CanTransition(s, s) {
			t.Errorf("CanTransition(%s, %s) = false, want true", s, s)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusDraft, StatusActive, StatusPaused, StatusClosed} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%s) = false, want true", s)
		}
	}
	if ValidStatus("OPEN") {
		t.Error("ValidStatus(\"OPEN\") = true, want false")
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleStudent, RoleRecruiter, RoleAdmin} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%s) = false, want true", r)
		}
	}
	if ValidRole("OWNER") {
		t.Error("ValidRole(\"OWNER\") = true, want false")
	}
}
