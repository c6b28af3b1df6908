package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	Port         string
	MongoURI     string
	RedisURL     string
	JwtSecret    []byte
	ProdMode     bool
	CookieDomain string

	// AllowedOrigins is the fixed CORS allow-list; credentials are enabled,
	// so a wildcard is not an option here.
	AllowedOrigins = []string{
		"http://localhost:3000",
		"http://192.168.0.100:3000",
		"http://192.168.0.101:3000",
		"http://192.168.0.120:3000",
		"https://lab-inventory-frontend-orpin.vercel.app",
	}
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = ":5000"
	} else if Port[0] != ':' {
		Port = ":" + Port
	}

	MongoURI = os.Getenv("MONGODB_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017"
	}

	RedisURL = os.Getenv("REDIS_URL")
	if RedisURL == "" {
		RedisURL = "redis://localhost:6379"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET not set; using insecure development secret")
		secret = "dev_secret_key"
	}
	JwtSecret = []byte(secret)

	ProdMode = strings.EqualFold(os.Getenv("PROD_MODE"), "true")
	CookieDomain = os.Getenv("COOKIE_DOMAIN")

	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				AllowedOrigins = append(AllowedOrigins, o)
			}
		}
	}
}
