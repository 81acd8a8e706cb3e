package models

import (
	"testing"
)

func TestPlaceholderSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     PlaceholderSet
		wantErr bool
	}{
		{
			name: "consistent snapshot",
			set: PlaceholderSet{
				Summary: PlaceholderSummary{Total: 2, FilledCount: 1, UnfilledCount: 1, CompletionPercent: 50},
				Placeholders: []Placeholder{
					{ID: "p1", IsFilled: true, Value: "Acme Inc"},
					{ID: "p2"},
				},
			},
			wantErr: false,
		},
		{
			name: "empty snapshot",
			set: PlaceholderSet{
				Summary: PlaceholderSummary{},
			},
			wantErr: false,
		},
		{
			name: "total disagrees with list length",
			set: PlaceholderSet{
				Summary:      PlaceholderSummary{Total: 3, FilledCount: 1, UnfilledCount: 2},
				Placeholders: []Placeholder{{ID: "p1"}},
			},
			wantErr: true,
		},
		{
			name: "filled plus unfilled disagrees with total",
			set: PlaceholderSet{
				Summary:      PlaceholderSummary{Total: 2, FilledCount: 2, UnfilledCount: 1, CompletionPercent: 100},
				Placeholders: []Placeholder{{ID: "p1"}, {ID: "p2"}},
			},
			wantErr: true,
		},
		{
			name: "completion percentage wrong",
			set: PlaceholderSet{
				Summary:      PlaceholderSummary{Total: 4, FilledCount: 1, UnfilledCount: 3, CompletionPercent: 50},
				Placeholders: []Placeholder{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}, {ID: "p4"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
