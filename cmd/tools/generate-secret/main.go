package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
)

func main() {
	raw := make([]byte, 48)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("Failed to generate secret: %v", err)
	}
	key := base64.RawStdEncoding.EncodeToString(raw)

	fmt.Println("=================================================")
	fmt.Println("  Session Signing Secret (HMAC-SHA256)")
	fmt.Println("=================================================")
	fmt.Println()
	fmt.Println("Generated secret (base64):")
	fmt.Println(key)
	fmt.Println()
	fmt.Println("Add this to your config/private.yaml:")
	fmt.Printf("jwt_key: \"%s\"\n", key)
	fmt.Println()
	fmt.Println("IMPORTANT:")
	fmt.Println("- Keep this secret secure!")
	fmt.Println("- Rotating it invalidates every active session.")
	fmt.Println("- Never commit this secret to version control!")
	fmt.Println("=================================================")
}
