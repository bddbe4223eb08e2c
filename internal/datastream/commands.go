package datastream

import "fmt"

// CommandKind groups SCS commands by wire shape.
type CommandKind int

const (
	KindControl              CommandKind = iota // 1 byte
	KindPresentationPosition                    // 34 function value
	KindSetAttribute                            // 28 type value
	KindCSP                                     // 2B class count [subtype] ...
	KindTransparency                            // 03|35 nn <nn bytes>
)

func (k CommandKind) String() string {
	switch k {
	case KindControl:
		return "control"
	case KindPresentationPosition:
		return "presentation-position"
	case KindSetAttribute:
		return "set-attribute"
	case KindCSP:
		return "csp"
	case KindTransparency:
		return "transparency"
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is one recognized SCS control sequence.
type Command struct {
	Name     string
	Kind     CommandKind
	Code     byte // first byte
	Function byte // PP function, SA type or CSP class
	SubType  byte // extended CSP classes only
	Extended bool // CSP command carries a subtype byte
}

// Sample returns the shortest byte sequence the SCS walk accepts as this
// command.
func (c Command) Sample() []byte {
	switch c.Kind {
	case KindPresentationPosition, KindSetAttribute:
		return []byte{c.Code, c.Function, 0x00}
	case KindCSP:
		if c.Extended {
			return []byte{c.Code, c.Function, 0x03, c.SubType, 0x00}
		}
		return []byte{c.Code, c.Function, 0x02, 0x00}
	case KindTransparency:
		return []byte{c.Code, 0x01, 0xC1}
	}
	return []byte{c.Code}
}

func (c Command) String() string {
	switch {
	case c.Kind == KindCSP && c.Extended:
		return fmt.Sprintf("%s (%02X %02X nn %02X)", c.Name, c.Code, c.Function, c.SubType)
	case c.Kind == KindCSP:
		return fmt.Sprintf("%s (%02X %02X nn)", c.Name, c.Code, c.Function)
	case c.Kind == KindPresentationPosition || c.Kind == KindSetAttribute:
		return fmt.Sprintf("%s (%02X %02X)", c.Name, c.Code, c.Function)
	}
	return fmt.Sprintf("%s (%02X)", c.Name, c.Code)
}

var scsCommands = []Command{
	{Name: "NUL", Kind: KindControl, Code: NUL},
	{Name: "HT", Kind: KindControl, Code: HT},
	{Name: "RNL", Kind: KindControl, Code: RNL},
	{Name: "SPS", Kind: KindControl, Code: SPS},
	{Name: "VT", Kind: KindControl, Code: VT},
	{Name: "FF", Kind: KindControl, Code: FF},
	{Name: "CR", Kind: KindControl, Code: CR},
	{Name: "SO", Kind: KindControl, Code: SO},
	{Name: "SI", Kind: KindControl, Code: SI},
	{Name: "RES", Kind: KindControl, Code: RES},
	{Name: "NL", Kind: KindControl, Code: NL},
	{Name: "BS", Kind: KindControl, Code: BS},
	{Name: "UBS", Kind: KindControl, Code: UBS},
	{Name: "IRS", Kind: KindControl, Code: IRS},
	{Name: "INP", Kind: KindControl, Code: INP},
	{Name: "LF", Kind: KindControl, Code: LF},
	{Name: "BEL", Kind: KindControl, Code: BEL},
	{Name: "SBS", Kind: KindControl, Code: SBS},
	{Name: "IT", Kind: KindControl, Code: IT},
	{Name: "RFF", Kind: KindControl, Code: RFF},
	{Name: "SUB", Kind: KindControl, Code: SUB},

	{Name: "ATRN", Kind: KindTransparency, Code: ATRN},
	{Name: "TRN", Kind: KindTransparency, Code: TRN},

	{Name: "AHPP", Kind: KindPresentationPosition, Code: PP, Function: AHPP},
	{Name: "AVPP", Kind: KindPresentationPosition, Code: PP, Function: AVPP},
	{Name: "RHPP", Kind: KindPresentationPosition, Code: PP, Function: RHPP},
	{Name: "RDPP", Kind: KindPresentationPosition, Code: PP, Function: RDPP},

	{Name: "SA-CHARSET", Kind: KindSetAttribute, Code: SA, Function: SACharacterSet},

	{Name: "SHF", Kind: KindCSP, Code: CSP, Function: ClassSHF},
	{Name: "SVF", Kind: KindCSP, Code: CSP, Function: ClassSVF},
	{Name: "SLD", Kind: KindCSP, Code: CSP, Function: ClassSLD},
	{Name: "SGEA", Kind: KindCSP, Code: CSP, Function: ClassSGEA},

	{Name: "SFG", Kind: KindCSP, Code: CSP, Function: ClassD1, SubType: 0x05, Extended: true},
	{Name: "SCGL", Kind: KindCSP, Code: CSP, Function: ClassD1, SubType: 0x81, Extended: true},
	{Name: "SCG", Kind: KindCSP, Code: CSP, Function: ClassD1, SubType: 0x82, Extended: true},

	{Name: "SJM", Kind: KindCSP, Code: CSP, Function: ClassD2, SubType: 0x03, Extended: true},
	{Name: "SHM", Kind: KindCSP, Code: CSP, Function: ClassD2, SubType: 0x11, Extended: true},
	{Name: "SSLD", Kind: KindCSP, Code: CSP, Function: ClassD2, SubType: 0x15, Extended: true},
	{Name: "SCD", Kind: KindCSP, Code: CSP, Function: ClassD2, SubType: 0x29, Extended: true},
	{Name: "SPSU", Kind: KindCSP, Code: CSP, Function: ClassD2, SubType: 0x40, Extended: true},
	{Name: "PPM", Kind: KindCSP, Code: CSP, Function: ClassD2, SubType: 0x48, Extended: true},
	{Name: "SVM", Kind: KindCSP, Code: CSP, Function: ClassD2, SubType: 0x49, Extended: true},
	{Name: "SPPS", Kind: KindCSP, Code: CSP, Function: ClassD2, SubType: 0x4C, Extended: true},
	{Name: "SLS", Kind: KindCSP, Code: CSP, Function: ClassD2, SubType: 0x85, Extended: true},

	{Name: "STO", Kind: KindCSP, Code: CSP, Function: ClassD3, SubType: 0xD2, Extended: true},
	{Name: "SPQ", Kind: KindCSP, Code: CSP, Function: ClassD3, SubType: 0xF6, Extended: true},

	{Name: "BUS", Kind: KindCSP, Code: CSP, Function: ClassD4, SubType: 0x0A, Extended: true},
	{Name: "EUS", Kind: KindCSP, Code: CSP, Function: ClassD4, SubType: 0x0E, Extended: true},
	{Name: "BOS", Kind: KindCSP, Code: CSP, Function: ClassD4, SubType: 0x8A, Extended: true},
	{Name: "EOS", Kind: KindCSP, Code: CSP, Function: ClassD4, SubType: 0x8E, Extended: true},

	{Name: "BDP", Kind: KindCSP, Code: CSP, Function: ClassFD, SubType: 0x01, Extended: true},
	{Name: "EDP", Kind: KindCSP, Code: CSP, Function: ClassFD, SubType: 0x02, Extended: true},
}

// commandTable indexes scsCommands for scanSCS.
type commandTable struct {
	leaders     map[byte]CommandKind // first byte -> shape
	functions   map[[2]byte]Command  // PP / SA: code, function
	cspDirect   map[byte]Command     // class
	cspExtended map[byte]map[byte]Command
}

var table = buildCommandTable(scsCommands)

func buildCommandTable(cmds []Command) *commandTable {
	t := &commandTable{
		leaders:     make(map[byte]CommandKind),
		functions:   make(map[[2]byte]Command),
		cspDirect:   make(map[byte]Command),
		cspExtended: make(map[byte]map[byte]Command),
	}
	for _, c := range cmds {
		if c.Code >= SCSControlLimit {
			panic(fmt.Sprintf("datastream: %s code 0x%02X is not a control code", c.Name, c.Code))
		}
		t.leaders[c.Code] = c.Kind
		switch c.Kind {
		case KindPresentationPosition, KindSetAttribute:
			t.functions[[2]byte{c.Code, c.Function}] = c
		case KindCSP:
			if !c.Extended {
				t.cspDirect[c.Function] = c
				continue
			}
			subs := t.cspExtended[c.Function]
			if subs == nil {
				subs = make(map[byte]Command)
				t.cspExtended[c.Function] = subs
			}
			subs[c.SubType] = c
		}
	}
	return t
}

// Commands returns a copy of the recognized SCS command table.
func Commands() []Command {
	out := make([]Command, len(scsCommands))
	copy(out, scsCommands)
	return out
}
