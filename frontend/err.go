package frontend

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	ErrQuit     = errors.New(f("quit requested"))
	ErrHeadless = errors.New(f("built without window support"))
)
