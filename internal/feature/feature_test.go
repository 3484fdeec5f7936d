package feature

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{"1", CareerPaths, false},
		{" 2 ", ResumeReview, false},
		{"5", InterviewPrep, false},
		{"0", 0, true},
		{"6", 0, true},
		{"two", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEveryFeatureHasInfo(t *testing.T) {
	for _, id := range All {
		info := id.Info()
		if info.Name == "" || info.Endpoint == "" || info.InputField == "" || info.ReplyField == "" {
			t.Errorf("feature %s has incomplete info: %+v", id, info)
		}
	}
	if ID(9).Valid() {
		t.Error("ID 9 should not be valid")
	}
}
