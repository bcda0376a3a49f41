package main

import "github.com/vfg2006/meta-insights-connector/internal/cli"

func main() {
	cli.Execute()
}
