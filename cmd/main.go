package main

import (
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/cli"
)

func main() {
	cli.Execute()
}
