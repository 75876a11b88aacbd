// Command printer formats tables, file sizes, wrapped text, titles and progress bars on
// the console.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
