package main

import (
	"os"

	"github.com/oclog/oclog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
