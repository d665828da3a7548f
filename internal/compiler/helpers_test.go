package compiler

import (
	"github.com/roach88/svgreact/internal/ir"
	"github.com/roach88/svgreact/internal/markup"
)

func parseForTest(src string) (*ir.Document, error) {
	return markup.Parse(src)
}
