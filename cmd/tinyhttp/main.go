package main

import (
	"github.com/niels/tinyhttp/internal/cmd"
)

func main() {
	cmd.Execute()
}
