package main

import (
	_ "time/tzdata"

	"github.com/udecbot/horarios/cmd"
)

func main() {
	cmd.Execute()
}
