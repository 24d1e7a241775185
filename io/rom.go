package io

import (
	"io"
)

const (
	ROM_CAPACITY = 0x1000 - 0x200 // Space between the program start and the end of memory.
)

// Rom holds a raw program image.
type Rom struct {
	Data []byte
}

// ReadFrom replaces the image with the contents of the reader.
func (rom *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	data, err := io.ReadAll(io.LimitReader(r, ROM_CAPACITY+1))
	n = int64(len(data))
	if err != nil {
		return
	}

	if len(data) > ROM_CAPACITY {
		err = ErrRomTooLarge
		return
	}

	rom.Data = data
	return
}

// Size returns the image size in bytes.
func (rom *Rom) Size() int {
	return len(rom.Data)
}
