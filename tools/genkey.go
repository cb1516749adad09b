// Command genkey imprime una master key nueva para el session store de
// archivo (sessions.file.master_key).
//
//	go run ./tools/genkey.go
package main

import (
	"encoding/base64"
	"fmt"
	"log"

	"github.com/aditya1111/learnhub/internal/security/secretbox"
)

func main() {
	key, err := secretbox.GenerateKey()
	if err != nil {
		log.Fatalf("generate key: %v", err)
	}
	fmt.Println(base64.StdEncoding.EncodeToString(key[:]))
}
