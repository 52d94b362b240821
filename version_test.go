package rsrc

import "testing"

func TestVersionWordVectors(t *testing.T) {
	tests := []struct {
		word uint32
		want VersionRecord
	}{
		{0x08008000, VersionRecord{Major: 8, Stage: StageRelease}},
		{0x14008001, VersionRecord{Major: 14, Stage: StageRelease, Build: 1}},
		{0x11312002, VersionRecord{Major: 11, Minor: 3, Bugfix: 1, Stage: StageDevelopment, Build: 2}},
		{0x21104027, VersionRecord{Major: 21, Minor: 1, Stage: StageAlpha, Build: 27}},
		{0x09216009, VersionRecord{Major: 9, Minor: 2, Bugfix: 1, Stage: StageBeta, Build: 9}},
		{0x15009F42, VersionRecord{Major: 15, Stage: StageRelease, Flags: 0x1F, Build: 42}},
	}
	for _, tt := range tests {
		got := DecodeVersionWord(tt.word)
		if got != tt.want {
			t.Fatalf("DecodeVersionWord(0x%08x) = %+v, want %+v", tt.word, got, tt.want)
		}
		if back := got.Word(); back != tt.word {
			t.Fatalf("Word() = 0x%08x, want 0x%08x", back, tt.word)
		}
	}
}

func TestVersionAtLeast(t *testing.T) {
	vr := VersionRecord{Major: 14, Minor: 1, Stage: StageRelease}
	tests := []struct {
		major, minor int
		want         bool
	}{
		{13, 9, true},
		{14, 0, true},
		{14, 1, true},
		{14, 2, false},
		{15, 0, false},
	}
	for _, tt := range tests {
		if got := vr.AtLeast(tt.major, tt.minor); got != tt.want {
			t.Fatalf("AtLeast(%d, %d) = %v, want %v", tt.major, tt.minor, got, tt.want)
		}
	}
}

func TestAtLeastRelease(t *testing.T) {
	tests := []struct {
		vr           VersionRecord
		major, minor int
		want         bool
	}{
		{VersionRecord{Major: 10, Stage: StageRelease}, 10, 0, true},
		{VersionRecord{Major: 10, Stage: StageBeta}, 10, 0, false},
		{VersionRecord{Major: 10, Minor: 1, Stage: StageBeta}, 10, 0, true},
		{VersionRecord{Major: 11, Stage: StageDevelopment}, 10, 0, true},
		{VersionRecord{Major: 9, Minor: 9, Stage: StageRelease}, 10, 0, false},
	}
	for _, tt := range tests {
		if got := atLeastRelease(tt.vr, tt.major, tt.minor); got != tt.want {
			t.Fatalf("atLeastRelease(%+v, %d, %d) = %v, want %v", tt.vr, tt.major, tt.minor, got, tt.want)
		}
	}
}

func TestStageString(t *testing.T) {
	if StageRelease.String() != "release" || Stage(9).String() != "unknown" {
		t.Fatal("stage names wrong")
	}
	if st, err := stageFromString("beta"); err != nil || st != StageBeta {
		t.Fatalf("stageFromString(beta) = %v, %v", st, err)
	}
	if _, err := stageFromString("golden"); err == nil {
		t.Fatal("expected error for unknown stage")
	}
}

func TestResolveVersion(t *testing.T) {
	saveWord := []byte{0x15, 0x00, 0x80, 0x00}

	t.Run("from save record", func(t *testing.T) {
		c := &Container{
			Layout: ExtendedLayout,
			Blocks: []*Block{
				{Tag: MakeTag("LVSR"), Sections: []*Section{{Index: 0, Data: append([]byte(nil), saveWord...)}}},
				{Tag: MakeTag("vers"), Sections: []*Section{{Index: 0, Data: versPayload()}}},
			},
		}
		if vr := ResolveVersion(c); vr.Major != 15 {
			t.Fatalf("major = %d, want 15 from save record", vr.Major)
		}
	})

	t.Run("from version block", func(t *testing.T) {
		c := &Container{
			Layout: ExtendedLayout,
			Blocks: []*Block{
				{Tag: MakeTag("vers"), Sections: []*Section{{Index: 0, Data: versPayload()}}},
			},
		}
		if vr := ResolveVersion(c); vr.Major != 14 {
			t.Fatalf("major = %d, want 14 from version block", vr.Major)
		}
	})

	t.Run("layout fallback", func(t *testing.T) {
		if vr := ResolveVersion(&Container{Layout: ExtendedLayout}); vr.Major != 8 {
			t.Fatalf("extended fallback major = %d, want 8", vr.Major)
		}
		if vr := ResolveVersion(&Container{Layout: LegacyLayout}); vr.Major != 5 {
			t.Fatalf("legacy fallback major = %d, want 5", vr.Major)
		}
	})
}
