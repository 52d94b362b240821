package rsrc

type Limits struct {
	MaxBlocks           int
	MaxSectionsPerBlock int
	MaxSectionPayload   uint32 // stored payload length as found in the data region
	MaxUncompressed     uint64 // payload bytes after zlib inflate
	MaxNameTable        uint32
}

func defaultLimits() Limits {
	return Limits{
		MaxBlocks:           4096,
		MaxSectionsPerBlock: 4096,
		MaxSectionPayload:   1 << 30, // 1 GiB stored payload cap
		MaxUncompressed:     2 << 30, // 2 GiB
		MaxNameTable:        1 << 20, // 1 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxBlocks == 0 {
		l.MaxBlocks = d.MaxBlocks
	}
	if l.MaxSectionsPerBlock == 0 {
		l.MaxSectionsPerBlock = d.MaxSectionsPerBlock
	}
	if l.MaxSectionPayload == 0 {
		l.MaxSectionPayload = d.MaxSectionPayload
	}
	if l.MaxUncompressed == 0 {
		l.MaxUncompressed = d.MaxUncompressed
	}
	if l.MaxNameTable == 0 {
		l.MaxNameTable = d.MaxNameTable
	}
	return l
}
