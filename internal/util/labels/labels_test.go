package labels

import "testing"

func TestNewLabelBuilder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		account string
	}{
		{"simple account name", "deploy"},
		{"with dots", "ci.runner"},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			labels := NewLabelBuilder(tt.account).Build()

			if labels[KeyAccount] != tt.account {
				t.Errorf("expected %s=%q, got %q", KeyAccount, tt.account, labels[KeyAccount])
			}
			if labels[KeyManagedBy] != ManagedByOpsretry {
				t.Errorf("expected %s=%q, got %q", KeyManagedBy, ManagedByOpsretry, labels[KeyManagedBy])
			}
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()
	labels := NewLabelBuilder("deploy").
		Merge(map[string]string{"env": "prod", KeyAccount: "override"}).
		Build()

	if labels["env"] != "prod" {
		t.Errorf("expected env=prod, got %q", labels["env"])
	}
	if labels[KeyAccount] != "override" {
		t.Errorf("expected merged account to win, got %q", labels[KeyAccount])
	}
}

func TestBuildReturnsCopy(t *testing.T) {
	t.Parallel()
	lb := NewLabelBuilder("deploy")
	first := lb.Build()
	first["mutated"] = "yes"

	if _, ok := lb.Build()["mutated"]; ok {
		t.Error("Build should return a copy")
	}
}
