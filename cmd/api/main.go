package main

import (
	"fmt"
	"os"

	"github.com/metinatakli/seat-reservation-engine/internal/app"
)

func main() {
	err := app.Run(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
