package main

import (
	"os"

	"hkid-gateway/cmd/hkidctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
