package main

import (
	"github.com/Princeton-CDH/cdhweb-components/pkg/cli"

	// Register site components.
	_ "github.com/Princeton-CDH/cdhweb-components/pkg/component/widgets"
)

func main() {
	cli.Execute()
}
