package main

import (
	"github.com/agenticsoft/gescom/cmd"
)

func main() {
	cmd.Execute()
}
