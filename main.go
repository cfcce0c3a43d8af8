package main

import (
	"os"

	"github.com/melitabakes/bakery/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
