package domain

import "testing"

func completeProfile(userType string) *Profile {
	return &Profile{
		ID:       "u1",
		UserType: userType,
		Phone:    "555-0100",
		City:     "Springfield",
	}
}

func incompleteProfile(userType string) *Profile {
	return &Profile{
		ID:       "u1",
		UserType: userType,
		Phone:    "555-0100",
		// City missing
	}
}

func TestDecide_SignedOutAlwaysAuth(t *testing.T) {
	for _, path := range []string{PathHome, PathOwnerDashboard, PathSitterDashboard, PathProfileSetup} {
		d := Decide(false, completeProfile(UserTypePetOwner), true, path)
		if d.Action != ActionRedirect || d.Path != PathAuth {
			t.Fatalf("path %s: expected redirect to %s, got %+v", path, PathAuth, d)
		}
	}
}

func TestDecide_MissingProfile(t *testing.T) {
	d := Decide(true, nil, false, PathOwnerDashboard)
	if d.Action != ActionRedirect || d.Path != PathProfileSetup {
		t.Fatalf("expected redirect to profile setup, got %+v", d)
	}
}

func TestDecide_IncompleteProfile(t *testing.T) {
	d := Decide(true, incompleteProfile(UserTypePetOwner), true, PathOwnerDashboard)
	if d.Action != ActionRedirect || d.Path != PathProfileSetup {
		t.Fatalf("expected redirect to profile setup, got %+v", d)
	}
}

func TestDecide_OwnerOnSitterDashboard(t *testing.T) {
	d := Decide(true, completeProfile(UserTypePetOwner), true, PathSitterDashboard)
	if d.Action != ActionRedirect || d.Path != PathOwnerDashboard {
		t.Fatalf("expected redirect to owner dashboard, got %+v", d)
	}
}

// The owner rule has no mirror: a complete sitter with a role profile sitting
// on the owner dashboard stays there.
func TestDecide_SitterOnOwnerDashboardStays(t *testing.T) {
	d := Decide(true, completeProfile(UserTypePetSitter), true, PathOwnerDashboard)
	if d.Action != ActionStay {
		t.Fatalf("expected stay, got %+v", d)
	}
}

func TestDecide_SitterMissingRoleProfile(t *testing.T) {
	// Off the sitter dashboard, a sitter without a role profile is sent to
	// profile setup.
	d := Decide(true, completeProfile(UserTypePetSitter), false, PathOwnerDashboard)
	if d.Action != ActionRedirect || d.Path != PathProfileSetup {
		t.Fatalf("expected redirect to profile setup, got %+v", d)
	}

	// On the sitter dashboard itself, the missing role profile is tolerated.
	d = Decide(true, completeProfile(UserTypePetSitter), false, PathSitterDashboard)
	if d.Action != ActionStay {
		t.Fatalf("expected stay on sitter dashboard, got %+v", d)
	}
}

func TestDecide_ShelterMissingRoleProfile(t *testing.T) {
	// The shelter rule carries no path exemption.
	for _, path := range []string{PathShelterDashboard, PathOwnerDashboard, PathHome} {
		d := Decide(true, completeProfile(UserTypePetShelter), false, path)
		if d.Action != ActionRedirect || d.Path != PathProfileSetup {
			t.Fatalf("path %s: expected redirect to profile setup, got %+v", path, d)
		}
	}
}

func TestDecide_CompleteUsersStay(t *testing.T) {
	cases := []struct {
		userType string
		path     string
	}{
		{UserTypePetOwner, PathOwnerDashboard},
		{UserTypePetSitter, PathSitterDashboard},
		{UserTypePetShelter, PathShelterDashboard},
	}
	for _, tc := range cases {
		d := Decide(true, completeProfile(tc.userType), true, tc.path)
		if d.Action != ActionStay {
			t.Fatalf("%s on %s: expected stay, got %+v", tc.userType, tc.path, d)
		}
	}
}

// Following a redirect must terminate: re-evaluating the gate from the
// redirect target never redirects to the same target again.
func TestDecide_RedirectTerminates(t *testing.T) {
	profiles := []*Profile{
		nil,
		incompleteProfile(UserTypePetOwner),
		completeProfile(UserTypePetOwner),
		completeProfile(UserTypePetSitter),
		completeProfile(UserTypePetShelter),
	}
	paths := []string{PathHome, PathAuth, PathProfileSetup, PathOwnerDashboard, PathSitterDashboard, PathShelterDashboard}

	for _, p := range profiles {
		for _, exists := range []bool{true, false} {
			for _, path := range paths {
				d := Decide(true, p, exists, path)
				if d.Action != ActionRedirect {
					continue
				}
				next := Decide(true, p, exists, d.Path)
				if next.Action == ActionRedirect && next.Path == d.Path {
					t.Fatalf("redirect loop at %s for profile %+v", d.Path, p)
				}
			}
		}
	}
}

// A user already on the page the gate would send them to is told to stay;
// the redirect targets render unguarded.
func TestDecide_NoSelfRedirect(t *testing.T) {
	cases := []struct {
		name    string
		profile *Profile
		exists  bool
	}{
		{"missing profile", nil, false},
		{"incomplete profile", incompleteProfile(UserTypePetOwner), false},
		{"sitter without role profile", completeProfile(UserTypePetSitter), false},
		{"shelter without role profile", completeProfile(UserTypePetShelter), false},
	}
	for _, tc := range cases {
		d := Decide(true, tc.profile, tc.exists, PathProfileSetup)
		if d.Action != ActionStay {
			t.Errorf("%s: expected stay on %s, got %+v", tc.name, PathProfileSetup, d)
		}
	}

	if d := Decide(false, nil, false, PathAuth); d.Action != ActionStay {
		t.Errorf("signed out on %s: expected stay, got %+v", PathAuth, d)
	}
}

// The gate carries no hidden state: the same inputs always yield the same
// decision.
func TestDecide_Idempotent(t *testing.T) {
	profiles := []*Profile{nil, incompleteProfile(UserTypePetSitter), completeProfile(UserTypePetSitter)}
	for _, p := range profiles {
		for _, exists := range []bool{true, false} {
			first := Decide(true, p, exists, PathSitterDashboard)
			second := Decide(true, p, exists, PathSitterDashboard)
			if first != second {
				t.Fatalf("decision changed between evaluations: %+v vs %+v", first, second)
			}
		}
	}
}

func TestDashboardPath(t *testing.T) {
	cases := []struct {
		name    string
		profile *Profile
		exists  bool
		want    string
	}{
		{"nil profile", nil, false, PathProfileSetup},
		{"owner", completeProfile(UserTypePetOwner), false, PathOwnerDashboard},
		{"sitter with role profile", completeProfile(UserTypePetSitter), true, PathSitterDashboard},
		{"sitter without role profile", completeProfile(UserTypePetSitter), false, PathProfileSetup},
		{"shelter with role profile", completeProfile(UserTypePetShelter), true, PathShelterDashboard},
		{"shelter without role profile", completeProfile(UserTypePetShelter), false, PathProfileSetup},
		{"unknown role", completeProfile("alien"), true, PathHome},
	}
	for _, tc := range cases {
		if got := DashboardPath(tc.profile, tc.exists); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}
