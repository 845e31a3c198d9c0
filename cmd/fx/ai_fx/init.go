package ai_fx

import (
	"context"
	"log"
	"os"
	"time"

	"go.uber.org/fx"
	"tripsmith/pkg/search"
	"tripsmith/pkg/utils"
)

var Module = fx.Provide(provideAIClient, provideSearchClient)

// provideAIClient selects the generative backend from the environment:
// AI_PROVIDER=gemini forces Gemini, otherwise OpenAI is used whenever a key
// is present.
func provideAIClient() utils.AIClientInterface {
	provider := os.Getenv("AI_PROVIDER")
	if provider == "gemini" || (provider == "" && os.Getenv("OPENAI_API_KEY") == "") {
		client, err := utils.NewGeminiClient(context.Background(), os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		return client
	}
	return utils.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
}

func provideSearchClient() search.Client {
	return search.NewCachedClient(search.NewTavilyClient(""), 15*time.Minute)
}
