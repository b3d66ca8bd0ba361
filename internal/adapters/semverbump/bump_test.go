package semverbump

import "testing"

func TestNext(t *testing.T) {
	tests := []struct {
		current string
		release string
		want    string
		wantErr bool
	}{
		{"1.2.3", Major, "2.0.0", false},
		{"1.2.3", Minor, "1.3.0", false},
		{"1.2.3", Patch, "1.2.4", false},
		{"1.2.3", Premajor, "2.0.0-0", false},
		{"1.2.3", Preminor, "1.3.0-0", false},
		{"1.2.3", Prepatch, "1.2.4-0", false},
		{"1.2.3", Prerelease, "1.2.4-0", false},
		{"1.2.4-0", Prerelease, "1.2.4-1", false},
		{"1.2.4-beta.3", Prerelease, "1.2.4-beta.4", false},
		{"1.2.4-beta", Prerelease, "1.2.4-beta.0", false},
		{"1.2.4-rc.1", Patch, "1.2.4", false},
		{"1.3.0-0", Minor, "1.3.0", false},
		{"1.3.1-0", Minor, "1.4.0", false},
		{"2.0.0-0", Major, "2.0.0", false},
		{"2.1.0-0", Major, "3.0.0", false},
		{"v1.0.0", Patch, "1.0.1", false},
		{"1.2.3", "4.0.0-alpha.1", "4.0.0-alpha.1", false},
		{"1.2.3", "v5.0.0", "5.0.0", false},
		{"1.2.3", "huge", "", true},
		{"1.2", "1.2", "", true},
		{"not-a-version", Patch, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.current+"/"+tt.release, func(t *testing.T) {
			got, err := Next(tt.current, tt.release)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Next(%q, %q) error = %v, wantErr %v", tt.current, tt.release, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Next(%q, %q) = %q, want %q", tt.current, tt.release, got, tt.want)
			}
		})
	}
}

func TestChoices(t *testing.T) {
	choices, err := Choices("0.4.1")
	if err != nil {
		t.Fatalf("Choices() unexpected error = %v", err)
	}
	if len(choices) != len(ReleaseTypes) {
		t.Fatalf("Choices() returned %d entries, want %d", len(choices), len(ReleaseTypes))
	}
	if choices[0].Label != Patch || choices[0].Version != "0.4.2" {
		t.Errorf("first choice = %+v, want patch 0.4.2", choices[0])
	}

	if _, err := Choices("bogus"); err == nil {
		t.Error("Choices(bogus) expected error")
	}
}
