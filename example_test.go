package tnsdedup_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davidvella/tnsdedup"
)

// ExampleDedup demonstrates collapsing duplicate nonzeros of a tensor file.
func ExampleDedup() {
	dir, err := os.MkdirTemp("", "tnsdedup-*")
	if err != nil {
		fmt.Printf("Failed to create temp dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "ratings.tns")
	output := filepath.Join(dir, "ratings.dedup.tns")

	// user item rating
	data := "1 1 4\n1 1 1\n1 2 3\n2 1 5\n2 1 0.5\n"
	if err := os.WriteFile(input, []byte(data), 0o600); err != nil {
		fmt.Printf("Failed to write input: %v\n", err)
		return
	}

	stats, err := tnsdedup.Dedup(context.Background(), input, output, 2)
	if err != nil {
		fmt.Printf("Failed to deduplicate: %v\n", err)
		return
	}

	result, err := os.ReadFile(output)
	if err != nil {
		fmt.Printf("Failed to read output: %v\n", err)
		return
	}

	fmt.Print(string(result))
	fmt.Printf("seen: %d pruned: %d\n", stats.Seen, stats.Pruned)

	// Output:
	// 1 1 5
	// 1 2 3
	// 2 1 5.5
	// seen: 4 pruned: 2
}
