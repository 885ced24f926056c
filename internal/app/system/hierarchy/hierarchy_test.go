package hierarchy

import "testing"

func TestNextHigher(t *testing.T) {
	tests := []struct {
		role   string
		want   string
		wantOK bool
	}{
		{RoleUser, RoleMember, true},
		{RoleMember, RoleCoreMember, true},
		{RoleCoreMember, RoleVicePresident, true},
		{RoleVicePresident, RolePresident, true},
		{RolePresident, RoleAdmin, true},
		{RoleAdmin, "", false},
		{"BOGUS", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got, ok := NextHigher(tt.role)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NextHigher(%q) = (%q, %v), want (%q, %v)", tt.role, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNextLower(t *testing.T) {
	tests := []struct {
		role   string
		want   string
		wantOK bool
	}{
		{RoleAdmin, RolePresident, true},
		{RolePresident, RoleVicePresident, true},
		{RoleVicePresident, RoleCoreMember, true},
		{RoleCoreMember, RoleMember, true},
		{RoleMember, RoleUser, true},
		{RoleUser, "", false},
		{"BOGUS", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got, ok := NextLower(tt.role)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NextLower(%q) = (%q, %v), want (%q, %v)", tt.role, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// Every role except the top has a next-higher, and stepping up then
// down returns to the original role.
func TestRoundTrip(t *testing.T) {
	for i, role := range Roles {
		up, ok := NextHigher(role)
		if i == len(Roles)-1 {
			if ok {
				t.Errorf("NextHigher(%q) should hit the boundary", role)
			}
			continue
		}
		if !ok {
			t.Fatalf("NextHigher(%q) unexpectedly at boundary", role)
		}
		back, ok := NextLower(up)
		if !ok || back != role {
			t.Errorf("NextLower(NextHigher(%q)) = %q, want %q", role, back, role)
		}
	}
}

func TestValid(t *testing.T) {
	for _, role := range Roles {
		if !Valid(role) {
			t.Errorf("Valid(%q) = false, want true", role)
		}
	}
	if Valid("user") {
		t.Error("Valid should be case-sensitive; labels are stored uppercase")
	}
}
