package main

import (
	"os"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
