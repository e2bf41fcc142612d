//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runBinary invokes the built spacebio binary.
func runBinary(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Ingest indexes corpus/metadata/ into the SQLite corpus database.
func Ingest() error {
	mg.Deps(Build)
	fmt.Println("[corpus] Indexing paper metadata.")
	return runBinary("corpus", "ingest")
}

// Serve runs the analytics API server on the default address.
func Serve() error {
	mg.Deps(Build)
	fmt.Println("[serve] Starting the analytics API.")
	return runBinary("serve")
}
