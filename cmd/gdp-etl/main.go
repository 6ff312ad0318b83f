package main

import (
	"worldgdp/cmd/gdp-etl/commands"
	"worldgdp/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
