package model

import "testing"

func TestParsePillar(t *testing.T) {
	tests := []struct {
		input   string
		want    Pillar
		wantErr bool
	}{
		{"health", PillarHealth, false},
		{"WORK", PillarWork, false},
		{"Growth", PillarGrowth, false},
		{"relationships", PillarRelationships, false},
		{"finance", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePillar(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePillar(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePillar(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePillar(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePillarImportance(t *testing.T) {
	tests := []struct {
		name    string
		weights map[Pillar]float64
		wantErr bool
	}{
		{
			name: "even split",
			weights: map[Pillar]float64{
				PillarHealth: 0.25, PillarWork: 0.25,
				PillarGrowth: 0.25, PillarRelationships: 0.25,
			},
			wantErr: false,
		},
		{
			name: "within tolerance",
			weights: map[Pillar]float64{
				PillarHealth: 0.34, PillarWork: 0.33, PillarGrowth: 0.33,
			},
			wantErr: false,
		},
		{
			name:    "partial weights summing to one",
			weights: map[Pillar]float64{PillarHealth: 0.7, PillarWork: 0.3},
			wantErr: false,
		},
		{
			name:    "sum too low",
			weights: map[Pillar]float64{PillarHealth: 0.5},
			wantErr: true,
		},
		{
			name: "sum too high",
			weights: map[Pillar]float64{
				PillarHealth: 0.6, PillarWork: 0.6,
			},
			wantErr: true,
		},
		{
			name:    "unknown pillar key",
			weights: map[Pillar]float64{Pillar("finance"): 1.0},
			wantErr: true,
		},
		{
			name:    "nil map is allowed",
			weights: nil,
			wantErr: false,
		},
		{
			name:    "empty map is allowed",
			weights: map[Pillar]float64{},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePillarImportance(tt.weights)
			if tt.wantErr && err == nil {
				t.Error("ValidatePillarImportance() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidatePillarImportance() unexpected error: %v", err)
			}
		})
	}
}
