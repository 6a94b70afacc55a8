package main

import (
	"os"

	"github.com/portfolio/backend/cmd/portfolioctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
