package main

import (
	"os"

	"github.com/dulha-dulhan/matrimony/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
