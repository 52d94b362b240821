package rsrc

import (
	"bytes"
	"errors"
	"testing"
)

func TestValidateContainer(t *testing.T) {
	valid := func() *Container { return sampleContainer() }

	tests := []struct {
		name   string
		mutate func(c *Container) *Container
		want   error
	}{
		{"nil container", func(c *Container) *Container { return nil }, ErrEncode},
		{"no blocks", func(c *Container) *Container { c.Blocks = nil; return c }, ErrEncode},
		{"block without sections", func(c *Container) *Container {
			c.Blocks[0].Sections = nil
			return c
		}, ErrEncode},
		{"duplicate section index", func(c *Container) *Container {
			b := c.Blocks[0]
			b.Sections = append(b.Sections, &Section{Index: b.Sections[0].Index})
			return c
		}, ErrEncode},
		{"name too long", func(c *Container) *Container {
			c.Blocks[0].Sections[0].Name = bytes.Repeat([]byte{'x'}, 256)
			return c
		}, ErrEncode},
		{"name in legacy layout", func(c *Container) *Container {
			c.Layout = LegacyLayout
			c.Blocks[0].Sections[0].Name = []byte("n")
			return c
		}, ErrEncode},
		{"filename too long", func(c *Container) *Container {
			c.Layout = LegacyLayout
			c.Filename = bytes.Repeat([]byte{'x'}, 256)
			return c
		}, ErrEncode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.mutate(valid())
			if err := validateContainer(c, defaultLimits()); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if err := validateContainer(valid(), defaultLimits()); err != nil {
		t.Fatalf("valid container rejected: %v", err)
	}
}

func TestValidateContainerLimits(t *testing.T) {
	c := sampleContainer()
	if err := validateContainer(c, Limits{MaxBlocks: 1}.withDefaults()); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("error = %v, want %v", err, ErrLimitExceeded)
	}
	if err := validateContainer(c, Limits{MaxSectionsPerBlock: 4096}.withDefaults()); err != nil {
		t.Fatalf("valid container rejected: %v", err)
	}

	b := c.Blocks[0]
	for i := 0; i < 5; i++ {
		b.Sections = append(b.Sections, &Section{Index: int32(i + 10)})
	}
	if err := validateContainer(c, Limits{MaxSectionsPerBlock: 2}.withDefaults()); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("error = %v, want %v", err, ErrLimitExceeded)
	}
}

func TestEncodeRejectsInvalid(t *testing.T) {
	c := sampleContainer()
	c.Blocks[0].Sections = nil
	if _, err := c.Encode(); !errors.Is(err, ErrEncode) {
		t.Fatalf("error = %v, want %v", err, ErrEncode)
	}
}

func TestLimitsWithDefaults(t *testing.T) {
	l := Limits{MaxBlocks: 7}.withDefaults()
	if l.MaxBlocks != 7 {
		t.Fatal("explicit limit overwritten")
	}
	d := defaultLimits()
	if l.MaxSectionsPerBlock != d.MaxSectionsPerBlock ||
		l.MaxSectionPayload != d.MaxSectionPayload ||
		l.MaxUncompressed != d.MaxUncompressed ||
		l.MaxNameTable != d.MaxNameTable {
		t.Fatal("zero limits not defaulted")
	}
}
