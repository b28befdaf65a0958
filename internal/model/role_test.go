package model

import (
	"encoding/json"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"Professional", RoleProfessional, false},
		{"artisan", RoleProfessional, false},
		{" client ", RoleClient, false},
		{"", 0, true},
		{"superuser", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseRole(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoleTextRoundTrip(t *testing.T) {
	for _, r := range Roles {
		b, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal %v: %v", r, err)
		}
		var back Role
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if back != r {
			t.Fatalf("round trip %v -> %v", r, back)
		}
	}
	if _, err := json.Marshal(Role(0)); err == nil {
		t.Fatal("expected error marshalling zero role")
	}
}

func TestRequestStatusDisputed(t *testing.T) {
	disputed := map[RequestStatus]bool{
		RequestStatusDisputedByClient:  true,
		RequestStatusDisputedByArtisan: true,
		RequestStatusDisputedByBoth:    true,
	}
	for _, s := range RequestStatuses {
		if s.Disputed() != disputed[s] {
			t.Errorf("%s.Disputed() = %v", s, s.Disputed())
		}
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if RequestStatus("closed").Valid() {
		t.Error("unexpected valid status")
	}
}
