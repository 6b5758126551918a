package booking

import "testing"

func TestEdgeExists(t *testing.T) {
	legal := [][2]Status{
		{StatusPending, StatusAccepted},
		{StatusPending, StatusCancelled},
		{StatusAccepted, StatusInProgress},
		{StatusAccepted, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}

	for _, edge := range legal {
		if !EdgeExists(edge[0], edge[1]) {
			t.Fatalf("expected edge %s -> %s to exist", edge[0], edge[1])
		}
	}

	illegal := [][2]Status{
		{StatusPending, StatusInProgress},
		{StatusPending, StatusCompleted},
		{StatusAccepted, StatusCompleted},
		{StatusAccepted, StatusPending},
		{StatusInProgress, StatusAccepted},
		{StatusCompleted, StatusCancelled},
		{StatusCompleted, StatusPending},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusAccepted},
	}

	for _, edge := range illegal {
		if EdgeExists(edge[0], edge[1]) {
			t.Fatalf("edge %s -> %s should not exist", edge[0], edge[1])
		}
	}
}

func TestTerminalStatesHaveNoTargets(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		if !IsTerminal(s) {
			t.Fatalf("%s should be terminal", s)
		}
		for _, role := range []Role{RoleCustomer, RoleProvider, RoleAdmin} {
			if targets := AllowedTargets(s, role); len(targets) != 0 {
				t.Fatalf("%s should have no targets for %s, got %v", s, role, targets)
			}
		}
	}
}

func TestCustomerCanOnlyCancel(t *testing.T) {
	for from := range map[Status]struct{}{
		StatusPending:    {},
		StatusAccepted:   {},
		StatusInProgress: {},
	} {
		for _, to := range AllowedTargets(from, RoleCustomer) {
			if to != StatusCancelled {
				t.Fatalf("customer allowed %s -> %s, only CANCELLED is expected", from, to)
			}
		}
	}
}

func TestCustomerCannotCancelInProgress(t *testing.T) {
	if RoleAllowed(StatusInProgress, StatusCancelled, RoleCustomer) {
		t.Fatal("customer must not cancel an in-progress booking")
	}
	if !RoleAllowed(StatusInProgress, StatusCancelled, RoleProvider) {
		t.Fatal("provider should cancel an in-progress booking")
	}
}

func TestAdminAllowedEverywhere(t *testing.T) {
	for from, targets := range transitions {
		for to := range targets {
			if !RoleAllowed(from, to, RoleAdmin) {
				t.Fatalf("admin should be allowed on %s -> %s", from, to)
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, ok := ParseStatus("ACCEPTED"); !ok {
		t.Fatal("ACCEPTED should parse")
	}
	if _, ok := ParseStatus("accepted"); ok {
		t.Fatal("lower-case status should not parse")
	}
	if _, ok := ParseStatus("DONE"); ok {
		t.Fatal("unknown status should not parse")
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []string{"CUSTOMER", "PROVIDER", "ADMIN"} {
		if _, ok := ParseRole(r); !ok {
			t.Fatalf("%s should parse", r)
		}
	}
	if _, ok := ParseRole("MANAGER"); ok {
		t.Fatal("unknown role should not parse")
	}
}
