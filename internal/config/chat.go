package config

// ChatConfig controls the generative chat widget. An empty APIKey is valid config;
// the chat service reports it per message instead of failing startup.
type ChatConfig struct {
	APIKey string
	Model  string
}

func loadChat() ChatConfig {
	return ChatConfig{
		APIKey: envOrDefault(envGeminiAPIKey, ""),
		Model:  envOrDefault(envChatModel, defaultChatModel),
	}
}

// DetailsConfig controls species description lookups.
type DetailsConfig struct {
	Languages []string
}

func loadDetails() DetailsConfig {
	return DetailsConfig{
		Languages: listEnvOrDefault(envFlavorLanguages, defaultFlavorLanguages),
	}
}
