package modules

import (
	"github.com/sandevgo/coregate/internal/core"
)

func NewHandlers() []core.Handler {
	return []core.Handler{
		NewFinance(),
		NewEducation(),
		NewCreator(),
		NewSampleText(),
	}
}
