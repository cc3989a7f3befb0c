// Package symbols provides a static map of well-known Apple II memory
// locations (Monitor ROM, Applesoft, and DOS 3.3 RWTS entry points) used
// to render human-readable labels in place of bare hex addresses.
package symbols

// table is grounded on the conventional Apple II memory map: the Monitor
// ROM's documented soft-switch and I/O entry points, Applesoft's commonly
// called BASIC runtime routines, and DOS 3.3's RWTS entry points.
var table = map[uint16]string{
	0xFB1E: "PREAD",
	0xFBB3: "SETTXT",
	0xFBD8: "SETGR",
	0xFC58: "HOME",
	0xFC62: "CLREOL",
	0xFC90: "WAIT",
	0xFCA8: "IOSAVE",
	0xFD0C: "RDKEY",
	0xFD1B: "KEYIN",
	0xFD35: "RDCHAR",
	0xFD6A: "GOADDR",
	0xFD75: "PRBLNK",
	0xFD8B: "CROUT1",
	0xFD8E: "CROUT",
	0xFDDA: "PRBYTE",
	0xFDE3: "PRHEX",
	0xFDED: "COUT",
	0xFDF0: "COUT1",
	0xFE80: "SETINV",
	0xFE84: "SETNORM",
	0xFE89: "SETKBD",
	0xFE93: "SETVID",
	0xFF2D: "PRERR",
	0xFF3A: "BELL",
	0xFF58: "RESET",

	// DOS 3.3 RWTS ("Read Write Track Sector") entry points.
	0x3D0: "RWTS",
	0x3D3: "RWTSENTRY",
	0x3DC: "DOSWARM",
	0x3E3: "DOSCOLDSTART",

	// Applesoft BASIC runtime entry points commonly targeted by JSR.
	0xA68E: "CHRGET",
	0xA82C: "SYNTAX_ERROR",
	0xD6A5: "FRMNUM",
	0xDD67: "FOUT",
	0xDEC9: "PLOT",
}

// FindSymbol is the concrete find_apple_ii_symbol (spec.md §6): it returns
// the name bound to addr, if any.
func FindSymbol(addr uint16) (string, bool) {
	name, ok := table[addr]
	return name, ok
}
