package main

import (
	"io"
	"log"
	"os"

	"github.com/comalice/matmul"
)

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatalf("write result: %v", err)
	}
}

func run(w io.Writer) error {
	return matmul.Run(w)
}
