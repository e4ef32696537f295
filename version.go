package zlayout

import "fmt"

// Version information (set during build, mirroring the teacher's cmd/arx
// linker-injected vars).
var (
	Major = "0"
	Minor = "1"
	Patch = "0"
)

// Version reports the library's "major.minor.patch" string.
func Version() string {
	return fmt.Sprintf("%s.%s.%s", Major, Minor, Patch)
}
