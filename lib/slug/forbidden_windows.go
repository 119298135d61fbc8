//go:build windows

package slug

var forbidden = []string{
	"con", "prn", "aux", "nul",
	"com1", "com2", "com3", "com4", "com5", "com6", "com7", "com8", "com9", "com0",
	"lpt1", "lpt2", "lpt3", "lpt4", "lpt5", "lpt6", "lpt7", "lpt8", "lpt9", "lpt0",
}

func checkForbidden(s string) error {
	for _, bad := range forbidden {
		if s == bad {
			return &BadSlugError{Kind: ForbiddenOnWindows, Name: bad}
		}
	}
	return nil
}
