// Command cryptokit-keygen prints fresh master-key material for the
// ENCRYPTION_MASTER_KEY and ENCRYPTION_SALT environment variables.
package main

import (
	"fmt"
	"log"

	"github.com/sealkit/cryptokit/pkg/crypt"
)

func main() {
	masterKey, err := crypt.GenerateSecureToken()
	if err != nil {
		log.Fatalf("Failed to generate master key: %v", err)
	}

	salt, err := crypt.GenerateSecureToken()
	if err != nil {
		log.Fatalf("Failed to generate salt: %v", err)
	}

	fmt.Println("Generated encryption settings (add to your environment):")
	fmt.Println("———")
	fmt.Printf("ENCRYPTION_MASTER_KEY=%s\n", masterKey)
	fmt.Printf("ENCRYPTION_SALT=%s\n", salt)
	fmt.Println("———")
}
