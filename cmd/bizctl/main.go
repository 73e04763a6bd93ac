package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/bizreg/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bizctl:", err)
		os.Exit(1)
	}
}
