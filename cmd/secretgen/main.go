package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shidoukh/shidoukh/pkg/crypto"
)

// secretgen prints a random URL-safe secret, handy for seeding SMTP app
// passwords into a secret manager or generating ad-hoc API credentials.
func main() {
	var length int
	var hex bool
	flag.IntVar(&length, "bytes", 32, "Number of random bytes in the secret")
	flag.BoolVar(&hex, "hex", false, "Emit hex instead of URL-safe base64")
	flag.Parse()

	if length <= 0 {
		fmt.Fprintln(os.Stderr, "error: -bytes must be positive")
		os.Exit(1)
	}

	generate := crypto.GenerateToken
	if hex {
		generate = crypto.GenerateHexSecret
	}

	secret, err := generate(length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(secret)
}
