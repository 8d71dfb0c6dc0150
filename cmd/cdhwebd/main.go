package main

import (
	"log"

	"github.com/Princeton-CDH/cdhweb-components/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
