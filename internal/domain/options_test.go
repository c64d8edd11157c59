package domain

import "testing"

func TestNoiseExposureRank(t *testing.T) {
	if got := NoiseExposureRank("Rarely"); got != 1 {
		t.Errorf("Rarely rank = %d, want 1", got)
	}
	if got := NoiseExposureRank("Constantly"); got != 5 {
		t.Errorf("Constantly rank = %d, want 5", got)
	}
	if got := NoiseExposureRank("Never"); got != UnknownRank {
		t.Errorf("unknown value rank = %d, want %d", got, UnknownRank)
	}
}

func TestFocusDisturbanceRank(t *testing.T) {
	if got := FocusDisturbanceRank("Almost Always"); got != 4 {
		t.Errorf("Almost Always rank = %d, want 4", got)
	}
	if got := FocusDisturbanceRank(""); got != UnknownRank {
		t.Errorf("empty value rank = %d, want %d", got, UnknownRank)
	}
}

func TestBotherLevelsCoverFullScale(t *testing.T) {
	// 40 through 110 in steps of 10, one label each.
	seen := make(map[int]bool)
	for label, level := range BotherLevels {
		if level < 40 || level > 110 || level%10 != 0 {
			t.Errorf("label %q has out-of-scale level %d", label, level)
		}
		if seen[level] {
			t.Errorf("level %d mapped by more than one label", level)
		}
		seen[level] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected 8 distinct levels, got %d", len(seen))
	}
}

func TestFilterKeep(t *testing.T) {
	dup := Submission{IsDuplicate: true}
	fresh := Submission{}

	all := NewFilter(true)
	if !all.Keep(&dup) || !all.Keep(&fresh) {
		t.Error("includeDuplicates=true must keep every record")
	}

	strict := NewFilter(false)
	if strict.Keep(&dup) {
		t.Error("includeDuplicates=false must drop duplicate records")
	}
	if !strict.Keep(&fresh) {
		t.Error("includeDuplicates=false must keep non-duplicate records")
	}
}

func TestFilterZeroValueIncludesEverything(t *testing.T) {
	var f Filter
	if !f.Keep(&Submission{IsDuplicate: true}) {
		t.Error("zero-value filter must keep duplicates")
	}
}
