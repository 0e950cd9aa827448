// apimock serves the fixture-backed product API double on a local
// port, for poking at the suite by hand:
//
//	DUMMYJSON_BASE_URL=http://localhost:8081 go test ./e2e/...
package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hasmiknersesyan/DummyJSON/internal/mockapi"
)

func main() {
	addr := ":8081"
	if v := os.Getenv("APIMOCK_ADDR"); v != "" {
		addr = v
	}

	log.Info().Str("addr", addr).Msg("apimock listening")
	if err := http.ListenAndServe(addr, mockapi.New().Handler()); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}
