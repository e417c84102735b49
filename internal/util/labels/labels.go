package labels

// Standard label keys for Hetzner Cloud resources created by opsretry.
const (
	// KeyAccount identifies the service account a key belongs to
	KeyAccount = "opsretry.io/account"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "opsretry.io/managed-by"
)

// ManagedByOpsretry is the KeyManagedBy value set on every resource.
const ManagedByOpsretry = "opsretry"

// LabelBuilder provides a fluent interface for building resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with the account pre-set.
func NewLabelBuilder(account string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyAccount:   account,
			KeyManagedBy: ManagedByOpsretry,
		},
	}
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}
