// Package errorf is a shortcut to the error constructors of lol.Main; an error made with
// errorf.E is logged at the place it is created.
package errorf

import (
	"variant.mleku.dev/lol"
)

var F, E, W, I, D, T lol.Err

func init() {
	F, E, W, I, D, T = lol.Main.Errorf.F, lol.Main.Errorf.E, lol.Main.Errorf.W,
		lol.Main.Errorf.I, lol.Main.Errorf.D, lol.Main.Errorf.T
}
