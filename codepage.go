package rsrc

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// DefaultCodePage is the Windows western-European page the authoring
// environment uses when nothing else is configured.
const DefaultCodePage = 1252

var codePages = map[int]*charmap.Charmap{
	437:  charmap.CodePage437,
	850:  charmap.CodePage850,
	852:  charmap.CodePage852,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1257: charmap.Windows1257,
}

// CodePage converts between the raw single-byte text stored in block
// payloads and UTF-8. The page is always supplied explicitly; the codec
// layer holds no ambient encoding state.
type CodePage struct {
	id int
	cm *charmap.Charmap
}

// LookupCodePage resolves a numeric page identifier.
func LookupCodePage(id int) (*CodePage, error) {
	cm, ok := codePages[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrCodePage, id)
	}
	return &CodePage{id: id, cm: cm}, nil
}

// ID returns the numeric page identifier.
func (cp *CodePage) ID() int {
	return cp.id
}

// Decode converts stored bytes to UTF-8 text.
func (cp *CodePage) Decode(b []byte) string {
	s, err := cp.cm.NewDecoder().Bytes(b)
	if err != nil {
		// Charmap decoders map every byte; keep raw on the impossible
		// path rather than dropping content.
		return string(b)
	}
	return string(s)
}

// Encode converts UTF-8 text back to stored bytes. Characters outside
// the page cannot be represented in a fixed-width slot.
func (cp *CodePage) Encode(s string) ([]byte, error) {
	b, err := cp.cm.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: text not representable in code page %d", ErrEncode, cp.id)
	}
	return b, nil
}
