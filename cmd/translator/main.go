package main

import (
	"os"

	"github.com/themultilangtranslator-png/multilang-translator/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
