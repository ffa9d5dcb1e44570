package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"product-catalog/internal/model"

	"github.com/shopspring/decimal"
)

// Writes a sample seed file: gzipped JSON lines, one product per line.
// Load it by starting the server with SEED_ENABLED=true.
func main() {
	out := flag.String("out", "data/catalog.jsonl.gz", "output file")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []model.Product{
		{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99")},
		{ID: 2, Name: "Gadget", Price: decimal.RequireFromString("24.50")},
		{ID: 3, Name: "Gizmo", Price: decimal.RequireFromString("3.75")},
		{ID: 4, Name: "Sprocket", Price: decimal.RequireFromString("0.45")},
		{ID: 5, Name: "Flux Capacitor", Price: decimal.RequireFromString("1210.00")},
	}

	if err := createCatalogFile(*out, products); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d products\n", *out, len(products))
}

func createCatalogFile(filePath string, products []model.Product) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)

	encoder := json.NewEncoder(gzipWriter)
	for _, product := range products {
		if err := encoder.Encode(product); err != nil {
			return fmt.Errorf("failed to write product %d: %w", product.ID, err)
		}
	}

	return gzipWriter.Close()
}
