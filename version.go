package rsrc

// Stage is the release stage stored in bits 13-15 of a packed version
// word.
type Stage int

const (
	StageUnknown     Stage = 0
	StageDevelopment Stage = 1
	StageAlpha       Stage = 2
	StageBeta        Stage = 3
	StageRelease     Stage = 4
)

func (s Stage) String() string {
	switch s {
	case StageDevelopment:
		return "development"
	case StageAlpha:
		return "alpha"
	case StageBeta:
		return "beta"
	case StageRelease:
		return "release"
	default:
		return "unknown"
	}
}

// VersionRecord is a decomposed 32-bit packed version word. Major and
// build are stored as two BCD digits each; minor and bugfix as single
// 4-bit fields.
type VersionRecord struct {
	Major  int
	Minor  int
	Bugfix int
	Stage  Stage
	Flags  int // 5-bit flag region at bits 8-12
	Build  int
}

// DecodeVersionWord unpacks a version word.
func DecodeVersionWord(v uint32) VersionRecord {
	return VersionRecord{
		Major:  int((v>>28)&0xF)*10 + int((v>>24)&0xF),
		Minor:  int((v >> 20) & 0xF),
		Bugfix: int((v >> 16) & 0xF),
		Stage:  Stage((v >> 13) & 0x7),
		Flags:  int((v >> 8) & 0x1F),
		Build:  int((v>>4)&0xF)*10 + int(v&0xF),
	}
}

// Word packs the record back into a version word, the exact inverse of
// DecodeVersionWord for in-range fields.
func (vr VersionRecord) Word() uint32 {
	var v uint32
	v |= uint32(vr.Major/10&0xF) << 28
	v |= uint32(vr.Major%10&0xF) << 24
	v |= uint32(vr.Minor&0xF) << 20
	v |= uint32(vr.Bugfix&0xF) << 16
	v |= uint32(vr.Stage&0x7) << 13
	v |= uint32(vr.Flags&0x1F) << 8
	v |= uint32(vr.Build/10&0xF) << 4
	v |= uint32(vr.Build % 10 & 0xF)
	return v
}

// AtLeast reports whether the record's version is at least major.minor.
func (vr VersionRecord) AtLeast(major, minor int) bool {
	if vr.Major != major {
		return vr.Major > major
	}
	return vr.Minor >= minor
}

// ResolveVersion determines the source version of a container. It
// prefers the save record block, falls back to the version block, and
// finally guesses from the layout generation so callers always get a
// usable record for codec variant selection.
func ResolveVersion(c *Container) VersionRecord {
	if b := c.FindBlock(MakeTag("LVSR")); b != nil {
		for _, s := range b.Sections {
			if len(s.Data) >= 4 {
				return DecodeVersionWord(beUint32(s.Data[:4]))
			}
		}
	}
	if b := c.FindBlock(MakeTag("vers")); b != nil {
		for _, s := range b.Sections {
			if len(s.Data) >= 4 {
				return DecodeVersionWord(beUint32(s.Data[:4]))
			}
		}
	}
	if c.Layout == ExtendedLayout {
		return VersionRecord{Major: 8, Stage: StageRelease}
	}
	return VersionRecord{Major: 5, Stage: StageRelease}
}
