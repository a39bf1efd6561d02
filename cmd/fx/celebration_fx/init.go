package celebration_fx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"
	"pottypal/internal/api/controllers"
	"pottypal/internal/services"
)

var Module = fx.Provide(
	ProvideCelebrationClient,
	ProvideCelebrationService,
	ProvideCelebrationController)

// CelebrationConfig holds configuration for message providers
type CelebrationConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvideCelebrationClient creates a provider client based on environment
// variables. A missing or unset provider is not fatal: the service then
// serves fallback messages only.
func ProvideCelebrationClient() (services.CelebrationClient, error) {
	config := getCelebrationConfig()

	if config.Provider == "" || config.APIKey == "" {
		log.Println("No celebration provider configured, using fallback messages only")
		return nil, nil
	}

	log.Printf("Initializing %s celebration client with model: %s", config.Provider, config.Model)

	switch strings.ToLower(config.Provider) {
	case "openai":
		return services.NewOpenAICelebrationClient(config.APIKey, config.Model), nil
	case "gemini":
		client, err := services.NewGeminiCelebrationClient(config.APIKey, config.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported celebration provider: %s. Use 'openai' or 'gemini'", config.Provider)
	}
}

func ProvideCelebrationService(client services.CelebrationClient) services.CelebrationServiceInterface {
	return services.NewCelebrationService(client)
}

func ProvideCelebrationController(celebrationService services.CelebrationServiceInterface) *controllers.CelebrationController {
	return controllers.NewCelebrationController(celebrationService)
}

func getCelebrationConfig() CelebrationConfig {
	provider := os.Getenv("CELEBRATION_PROVIDER")

	var apiKey, model string
	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = os.Getenv("OPENAI_MODEL")
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = os.Getenv("GEMINI_MODEL")
	}

	return CelebrationConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}
