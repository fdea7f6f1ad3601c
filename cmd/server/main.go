package main

import (
	"log"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"

	"zoomride/internal/auth"
	"zoomride/internal/config"
	"zoomride/internal/db"
	"zoomride/internal/handlers"
	"zoomride/internal/kyc"
	"zoomride/internal/router"
)

func main() {
	config.Load()
	db.Init()

	rdb := newRedisClient()
	bl := auth.NewBlacklist(rdb)
	handlers.Blacklist = bl
	handlers.Verifier = newVerifier()

	port := config.Get("PORT", "5000")
	log.Println("server listening on port", port)
	if err := http.ListenAndServe(":"+port, router.RegisterRouter(bl)); err != nil {
		log.Fatal(err)
	}
}

func newRedisClient() *redis.Client {
	if url := os.Getenv("REDIS_URL"); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			log.Fatal("invalid REDIS_URL: ", err)
		}
		return redis.NewClient(opts)
	}
	return redis.NewClient(&redis.Options{Addr: "localhost:6379"})
}

func newVerifier() *kyc.Verifier {
	var extractor kyc.TextExtractor
	if os.Getenv("OCR_ENGINE") == "vision" {
		extractor = &kyc.VisionExtractor{CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")}
	} else {
		extractor = &kyc.TesseractExtractor{}
	}

	v := kyc.NewVerifier(kyc.NewHTTPFetcher(), extractor)
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		v.DLParser = &kyc.GeminiDLParser{APIKey: key}
	}
	return v
}
