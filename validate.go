package rsrc

import "fmt"

// validateContainer checks the structural invariants the binary layout
// cannot express before a write: the decremented count encoding needs
// at least one element at each level, section indexes must be unique
// within a block, and names must fit their one-byte length prefix.
func validateContainer(c *Container, limits Limits) error {
	if c == nil {
		return fmt.Errorf("%w: container is nil", ErrEncode)
	}
	if len(c.Blocks) == 0 {
		return fmt.Errorf("%w: container has no blocks", ErrEncode)
	}
	if len(c.Blocks) > limits.MaxBlocks {
		return fmt.Errorf("%w: %d blocks", ErrLimitExceeded, len(c.Blocks))
	}
	if c.Layout == LegacyLayout && len(c.Filename) > 255 {
		return fmt.Errorf("%w: filename of %d bytes exceeds length prefix", ErrEncode, len(c.Filename))
	}
	for _, b := range c.Blocks {
		if len(b.Sections) == 0 {
			return fmt.Errorf("%w: block %s has no sections", ErrEncode, b.Tag)
		}
		if len(b.Sections) > limits.MaxSectionsPerBlock {
			return fmt.Errorf("%w: block %s has %d sections", ErrLimitExceeded, b.Tag, len(b.Sections))
		}
		seen := make(map[int32]struct{}, len(b.Sections))
		for _, s := range b.Sections {
			if _, ok := seen[s.Index]; ok {
				return fmt.Errorf("%w: block %s has duplicate section index %d", ErrEncode, b.Tag, s.Index)
			}
			seen[s.Index] = struct{}{}
			if len(s.Name) > 255 {
				return fmt.Errorf("%w: block %s section %d name of %d bytes exceeds length prefix", ErrEncode, b.Tag, s.Index, len(s.Name))
			}
			if c.Layout == LegacyLayout && s.Name != nil {
				return fmt.Errorf("%w: block %s section %d has a name in legacy layout", ErrEncode, b.Tag, s.Index)
			}
		}
	}
	return nil
}
