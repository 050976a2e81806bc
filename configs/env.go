package configs

import (
	_ "embed"
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
)

//go:embed application.yml
var ApplicationYAML []byte

//go:embed messages.yml
var MessagesYAML []byte

// init loads dotenv files before any property is resolved.
func init() {
	// .env.local wins over .env; godotenv never overrides variables already set
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Ignoring %s: %v", file, err)
		}
	}
}
