package display

import (
	"fmt"
	"os"

	"github.com/backmassage/framescript/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `  __                                         _       _
 / _|_ __ __ _ _ __ ___   ___  ___  ___ _ __(_)_ __ | |_
| |_| '__/ _`+"`"+` | '_ `+"`"+` _ \ / _ \/ __|/ __| '__| | '_ \| __|
|  _| | | (_| | | | | | |  __/\__ \ (__| |  | | |_) | |_
|_| |_|  \__,_|_| |_| |_|\___||___/\___|_|  |_| .__/ \__|
                                              |_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
