package raster

// Raw key codes as reported in Event.Code. The code space follows the
// legacy host's virtual key numbering; hosts that speak another scheme
// (raster/term) translate into these.
const (
	CodeNone      = 0x00
	CodeReturn    = 0x24
	CodeTab       = 0x30
	CodeBackspace = 0x33
	CodeEscape    = 0x35
	CodeShift     = 0x38
	CodeHome      = 0x73
	CodePageUp    = 0x74
	CodeDelete    = 0x75
	CodeEnd       = 0x77
	CodePageDown  = 0x79
	CodeLeft      = 0x7B
	CodeRight     = 0x7C
	CodeDown      = 0x7D
	CodeUp        = 0x7E
)
