//go:build tinygo

package main

import (
	"context"

	"github.com/robotalks/nrfduo/pkg/board"
	"github.com/robotalks/nrfduo/pkg/firmware"
)

//go-build: tinygo flash -target=pico ./cmd/nrfduo-fw

func main() {
	b, err := board.Open(board.NewConfig())
	if err != nil {
		println("board:", err.Error())
		return
	}
	if err := firmware.New(b, firmware.NewConfig()).Run(context.Background()); err != nil {
		println("firmware:", err.Error())
	}
	// Nothing to return to on the chip.
	select {}
}
