package parser

import (
	"github.com/gnana997/react2ts/pkg/util"
)

// getDefaultPoolSize returns the parser pool size per grammar.
//
// It MUST match the converter worker pool size (both use
// util.GetOptimalPoolSize) so a worker never waits on a parser.
func getDefaultPoolSize() int {
	return util.GetOptimalPoolSize()
}
