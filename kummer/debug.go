package kummer

import (
	"fmt"
	"os"
)

var debugOn = os.Getenv("KUMMER_DEBUG") == "1"

func dbg(f string, a ...any) {
	if debugOn {
		fmt.Fprintf(os.Stderr, f, a...)
	}
}
