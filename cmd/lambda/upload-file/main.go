package main

import (
	"context"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"arrurru-functions/internal/config"
	"arrurru-functions/internal/handlers"
	"arrurru-functions/internal/logging"
	"arrurru-functions/pkg/lambda"
)

var handler *handlers.UploadHandler

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logging.Setup(cfg.Log)

	manager := lambda.GetConnectionManager()
	if err := manager.Initialize(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize container")
	}

	container, err := manager.GetContainer(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to get container")
	}

	handler = handlers.NewUploadHandler(container.UploadService)
}

func main() {
	awslambda.Start(lambda.Adapt(handler.HandleUpload))
}
