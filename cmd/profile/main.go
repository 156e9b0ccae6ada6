package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"datalens/adapters/ingest"
	"datalens/internal/analyze"
)

// profile reads one tabular file and prints its statistical profile as JSON.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file.csv|file.tsv|file.xlsx>\n", os.Args[0])
		os.Exit(2)
	}

	tbl, err := ingest.NewReader(os.Args[1]).Read()
	if err != nil {
		log.Fatalf("Failed to read %s: %v", os.Args[1], err)
	}

	result := analyze.New().Profile(tbl)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}
