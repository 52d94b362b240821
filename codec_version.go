package rsrc

import (
	"fmt"

	"github.com/logicossoftware/go-rsrc/internal/binary"
)

// protectedFlag marks a password-protected file in the exec flags word
// of the save record.
const protectedFlag uint32 = 0x2000

// versionNode renders a packed version word as a Version child node.
func versionNode(vr VersionRecord) *Node {
	n := NewNode("Version")
	setInt(n, "Major", int64(vr.Major))
	setInt(n, "Minor", int64(vr.Minor))
	setInt(n, "Bugfix", int64(vr.Bugfix))
	n.SetAttr("Stage", vr.Stage.String())
	setInt(n, "Build", int64(vr.Build))
	setHexFlags(n, "Flags", uint64(vr.Flags))
	return n
}

func versionFromNode(n *Node) (VersionRecord, error) {
	var vr VersionRecord
	var err error
	var v int64
	if v, err = getInt(n, "Major"); err != nil {
		return vr, err
	}
	vr.Major = int(v)
	if v, err = getInt(n, "Minor"); err != nil {
		return vr, err
	}
	vr.Minor = int(v)
	if v, err = getInt(n, "Bugfix"); err != nil {
		return vr, err
	}
	vr.Bugfix = int(v)
	if v, err = getInt(n, "Build"); err != nil {
		return vr, err
	}
	vr.Build = int(v)
	flags, err := getUint(n, "Flags")
	if err != nil {
		return vr, err
	}
	vr.Flags = int(flags)
	stage, _ := n.Attr("Stage")
	vr.Stage, err = stageFromString(stage)
	return vr, err
}

func stageFromString(s string) (Stage, error) {
	for st := StageUnknown; st <= StageRelease; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return StageUnknown, fmt.Errorf("%w: unknown stage %q", ErrEncode, s)
}

// atLeastRelease reports whether vr is at least the release build of
// major.minor; pre-release builds of exactly that version do not count.
func atLeastRelease(vr VersionRecord, major, minor int) bool {
	if vr.Major != major {
		return vr.Major > major
	}
	if vr.Minor != minor {
		return vr.Minor > minor
	}
	return vr.Stage >= StageRelease
}

// saveRecordCodec handles the save record block. The fixed part grew
// over the format's history: 120 bytes, then a third digest, then an
// inlining byte, then a padded trailing word. Which tail fields exist
// is gated on the record's own version word, and anything past the
// known fields is preserved verbatim.
type saveRecordCodec struct{}

type saveRecordField struct {
	key   string
	width int // 1, 2 or 4 bytes
	hex   bool
}

var saveRecordFields = []saveRecordField{
	{key: "Field08", width: 4, hex: true},
	{key: "Field0C", width: 4},
	{key: "Flags10", width: 2, hex: true},
	{key: "Field12", width: 2},
	{key: "ButtonsHidden", width: 2, hex: true},
	{key: "FrontPanelFlags", width: 2, hex: true},
	{key: "InstrState", width: 4, hex: true},
	{key: "ExecState", width: 4},
	{key: "ExecPrio", width: 2},
	{key: "ViType", width: 2},
	{key: "Field24", width: 4},
	{key: "Field28", width: 4},
	{key: "Field2C", width: 4},
	{key: "Field30", width: 4},
}

var saveRecordTailFields = []saveRecordField{
	{key: "Field44", width: 4},
	{key: "Field48", width: 4},
	{key: "Field4C", width: 2},
	{key: "Field4E", width: 2},
}

func (saveRecordCodec) Decode(data []byte, ctx Context) (*Node, error) {
	r := binary.NewReader(data)
	word, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("save record too short (%d bytes)", len(data))
	}
	vr := DecodeVersionWord(word)

	n := NewNode("SaveRecord")
	n.AddChild(versionNode(vr))

	execFlags, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	setBool(n, "Protected", execFlags&protectedFlag != 0)
	setHexFlags(n, "ExecFlags", uint64(execFlags&^protectedFlag))

	if err := readRecordFields(r, n, saveRecordFields); err != nil {
		return nil, err
	}
	sig, err := r.ReadBytes(16)
	if err != nil {
		return nil, err
	}
	setHexBytes(n, "Signature", sig)
	if err := readRecordFields(r, n, saveRecordTailFields); err != nil {
		return nil, err
	}
	for _, key := range []string{"Field50MD5", "LibPassMD5"} {
		b, err := r.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		setHexBytes(n, key, b)
	}
	for _, key := range []string{"Field70", "Field74"} {
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		setUint(n, key, uint64(v))
	}

	if atLeastRelease(vr, 10, 0) {
		b, err := r.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		setHexBytes(n, "Field78MD5", b)
	}
	if vr.AtLeast(14, 0) {
		v, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		setUint(n, "InlineStg", uint64(v))
	}
	if vr.AtLeast(15, 0) {
		if err := r.Skip(3); err != nil {
			return nil, err
		}
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		setUint(n, "Field8C", uint64(v))
	}
	if rest := r.Remaining(); rest > 0 {
		tail, _ := r.ReadBytes(rest)
		n.Payload = append([]byte(nil), tail...)
	}
	return n, nil
}

func (saveRecordCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	vn := n.Child("Version")
	if vn == nil {
		return nil, fmt.Errorf("%w: save record without Version child", ErrEncode)
	}
	vr, err := versionFromNode(vn)
	if err != nil {
		return nil, err
	}

	w := binary.NewWriter()
	w.WriteUint32(vr.Word())
	execFlags, err := getUint(n, "ExecFlags")
	if err != nil {
		return nil, err
	}
	protected, err := getBool(n, "Protected")
	if err != nil {
		return nil, err
	}
	flags := uint32(execFlags) &^ protectedFlag
	if protected {
		flags |= protectedFlag
	}
	w.WriteUint32(flags)

	if err := writeRecordFields(w, n, saveRecordFields); err != nil {
		return nil, err
	}
	sig, err := getHexBytes(n, "Signature", 16)
	if err != nil {
		return nil, err
	}
	w.WriteBytes(sig)
	if err := writeRecordFields(w, n, saveRecordTailFields); err != nil {
		return nil, err
	}
	for _, key := range []string{"Field50MD5", "LibPassMD5"} {
		b, err := getHexBytes(n, key, 16)
		if err != nil {
			return nil, err
		}
		w.WriteBytes(b)
	}
	for _, key := range []string{"Field70", "Field74"} {
		v, err := getUint(n, key)
		if err != nil {
			return nil, err
		}
		w.WriteUint32(uint32(v))
	}

	if atLeastRelease(vr, 10, 0) {
		b, err := getHexBytes(n, "Field78MD5", 16)
		if err != nil {
			return nil, err
		}
		w.WriteBytes(b)
	}
	if vr.AtLeast(14, 0) {
		v, err := getUint(n, "InlineStg")
		if err != nil {
			return nil, err
		}
		w.WriteUint8(uint8(v))
	}
	if vr.AtLeast(15, 0) {
		w.WriteZeros(3)
		v, err := getUint(n, "Field8C")
		if err != nil {
			return nil, err
		}
		w.WriteUint32(uint32(v))
	}
	w.WriteBytes(n.Payload)
	return w.Bytes(), nil
}

func readRecordFields(r *binary.Reader, n *Node, fields []saveRecordField) error {
	for _, f := range fields {
		var v uint64
		switch f.width {
		case 1:
			b, err := r.ReadUint8()
			if err != nil {
				return err
			}
			v = uint64(b)
		case 2:
			b, err := r.ReadUint16()
			if err != nil {
				return err
			}
			v = uint64(b)
		default:
			b, err := r.ReadUint32()
			if err != nil {
				return err
			}
			v = uint64(b)
		}
		if f.hex {
			setHexFlags(n, f.key, v)
		} else {
			setUint(n, f.key, v)
		}
	}
	return nil
}

func writeRecordFields(w *binary.Writer, n *Node, fields []saveRecordField) error {
	for _, f := range fields {
		v, err := getUint(n, f.key)
		if err != nil {
			return err
		}
		switch f.width {
		case 1:
			w.WriteUint8(uint8(v))
		case 2:
			w.WriteUint16(uint16(v))
		default:
			w.WriteUint32(uint32(v))
		}
	}
	return nil
}

// versionCodec handles the version block: a packed version word and
// two Pascal strings, each followed by a zero byte. Newer files append
// a two-byte language code, detected by what remains after the second
// terminator.
type versionCodec struct{}

func (versionCodec) Decode(data []byte, ctx Context) (*Node, error) {
	r := binary.NewReader(data)
	word, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("version block too short (%d bytes)", len(data))
	}
	n := versionNode(DecodeVersionWord(word))

	text, err := readTerminatedPascal(r)
	if err != nil {
		return nil, err
	}
	info, err := readTerminatedPascal(r)
	if err != nil {
		return nil, err
	}
	n.SetAttr("Text", ctx.CodePage.Decode(text))
	n.SetAttr("Info", ctx.CodePage.Decode(info))
	if r.Remaining() == 2 {
		lang, _ := r.ReadUint16()
		setUint(n, "Language", uint64(lang))
	} else if r.Remaining() > 0 {
		return nil, fmt.Errorf("version block has %d trailing bytes", r.Remaining())
	}
	return n, nil
}

func (versionCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	vr, err := versionFromNode(n)
	if err != nil {
		return nil, err
	}
	w := binary.NewWriter()
	w.WriteUint32(vr.Word())
	for _, key := range []string{"Text", "Info"} {
		s, _ := n.Attr(key)
		b, err := ctx.CodePage.Encode(s)
		if err != nil {
			return nil, err
		}
		if err := writePascal(w, b); err != nil {
			return nil, err
		}
		w.WriteUint8(0)
	}
	if _, ok := n.Attr("Language"); ok {
		lang, err := getUint(n, "Language")
		if err != nil {
			return nil, err
		}
		w.WriteUint16(uint16(lang))
	}
	return w.Bytes(), nil
}

// readTerminatedPascal reads a Pascal string followed by a mandatory
// zero byte.
func readTerminatedPascal(r *binary.Reader) ([]byte, error) {
	b, err := readPascal(r)
	if err != nil {
		return nil, err
	}
	term, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if term != 0 {
		return nil, fmt.Errorf("string terminator is 0x%02x, want zero", term)
	}
	return b, nil
}
