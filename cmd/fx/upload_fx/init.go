package upload_fx

import (
	"os"

	"go.uber.org/fx"
	"pottypal/internal/api/controllers"
	"pottypal/internal/services"
)

var Module = fx.Provide(
	provideUploadService, provideUploadController)

func provideUploadService() (services.UploadServiceInterface, error) {
	cfg := services.S3UploadConfig{
		Region:    getEnvWithDefault("AWS_REGION", "us-east-1"),
		Bucket:    getEnvWithDefault("S3_REWARD_IMAGES_BUCKET", "reward-images"),
		PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}
	return services.NewS3UploadService(cfg)
}

func provideUploadController(uploadService services.UploadServiceInterface) *controllers.UploadController {
	return controllers.NewUploadController(uploadService)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
