package main

import (
	"fmt"
	"os"

	"finsight/insights/cmd/aggregate"
	"finsight/insights/cmd/calc"
	"finsight/insights/cmd/root"
	"finsight/insights/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(aggregate.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(calc.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
