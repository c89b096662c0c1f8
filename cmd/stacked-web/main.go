package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/toocheesy/stacked/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	modesFile := flag.String("modes", "", "path to modes YAML file (empty for built-ins)")
	flag.Parse()

	srv := web.NewServer(*modesFile)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("STACKED! table open at http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
