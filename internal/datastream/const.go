package datastream

// AFP structured field framing.
const (
	AFPIntroducer   byte = 0x5A // Carriage control byte preceding every structured field
	AFPMinFieldSize      = 5    // 2-byte length + 3-byte identifier
	afpHeaderSize        = 3    // introducer + 2-byte length
)

// SCSControlLimit is the EBCDIC space. Every SCS control code is below it.
const SCSControlLimit byte = 0x40

// Single-byte SCS control codes.
const (
	NUL byte = 0x00 // Null
	HT  byte = 0x05 // Horizontal tab
	RNL byte = 0x06 // Required new line
	SPS byte = 0x09 // Superscript
	VT  byte = 0x0B // Vertical tab
	FF  byte = 0x0C // Form feed
	CR  byte = 0x0D // Carriage return
	SO  byte = 0x0E // Shift out
	SI  byte = 0x0F // Shift in
	RES byte = 0x14 // Restore (enable presentation)
	NL  byte = 0x15 // New line
	BS  byte = 0x16 // Backspace
	UBS byte = 0x1A // Unit backspace
	IRS byte = 0x1E // Interchange record separator
	INP byte = 0x24 // Inhibit presentation
	LF  byte = 0x25 // Line feed
	BEL byte = 0x2F // Bell / stop
	SBS byte = 0x38 // Subscript
	IT  byte = 0x39 // Indent tab
	RFF byte = 0x3A // Required form feed
	SUB byte = 0x3F // Substitute
)

// Multi-byte SCS command introducers.
const (
	ATRN byte = 0x03 // ASCII transparency: 03 nn <nn bytes>
	SA   byte = 0x28 // Set attribute: 28 type value
	CSP  byte = 0x2B // Control sequence prefix: 2B class count ...
	PP   byte = 0x34 // Presentation position: 34 function value
	TRN  byte = 0x35 // Transparency: 35 nn <nn bytes>
)

// Presentation position (0x34) function codes.
const (
	AHPP byte = 0xC0 // Absolute horizontal
	AVPP byte = 0xC4 // Absolute vertical
	RHPP byte = 0xC8 // Relative horizontal
	RDPP byte = 0x4C // Relative down
)

// Set attribute (0x28) types.
const SACharacterSet byte = 0x43

// CSP (0x2B) command classes.
const (
	ClassSHF  byte = 0xC1 // Set horizontal format
	ClassSVF  byte = 0xC2 // Set vertical format
	ClassSLD  byte = 0xC6 // Set line density
	ClassSGEA byte = 0xC8 // Set graphic error action
	ClassD1   byte = 0xD1 // Font / code page
	ClassD2   byte = 0xD2 // Page and margin controls
	ClassD3   byte = 0xD3 // Orientation and print quality
	ClassD4   byte = 0xD4 // Underscore / overstrike
	ClassFD   byte = 0xFD // Device passthrough
)

// Fixed command sizes.
const (
	ppSize     = 3 // 34 function value
	saSize     = 3 // 28 type value
	cspMinSize = 3 // 2B class count
	cspExtSize = 4 // 2B class count subtype
	trnMinSize = 2 // 35 nn
)
