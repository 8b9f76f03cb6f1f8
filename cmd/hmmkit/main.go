package main

import (
	"hmmkit/internal/app"
	"hmmkit/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
