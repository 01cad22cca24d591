package main

import (
	"log"
	"os"

	"github.com/ai-discovery/discovery-backend/internal/builder"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

// Serves the same router behind an API Gateway HTTP API (payload v2).
func main() {
	environment := os.Getenv("APP_ENV")
	if environment == "" {
		environment = "prod"
	}

	handler, cleanup, _, logger, err := builder.BuildHandler(environment)
	if err != nil {
		log.Fatal("Failed to build application:", err)
	}
	defer cleanup()
	defer logger.Sync()

	lambda.Start(httpadapter.NewV2(handler).ProxyWithContext)
}
