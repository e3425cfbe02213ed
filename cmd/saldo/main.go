package main

import (
	"fmt"
	"os"

	"saldo/internal/cli"
)

func main() {
	if err := cli.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "saldo:", err)
		os.Exit(1)
	}
}
