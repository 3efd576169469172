package configs

import "time"

// Narrative configures the external narrative-generation service. The
// API key is carried here and passed explicitly to the client at
// construction time, never read from ambient state, so the core stays
// testable without environment coupling. An empty key disables the
// service entirely and every report uses the rule-based summary.
type Narrative struct {
	// BaseURL is the root of an OpenAI-compatible API.
	BaseURL string `env:"BASE_URL" envDefault:"https://api.openai.com/v1"`
	// APIKey authenticates requests. Empty disables the service.
	APIKey string `env:"API_KEY"`
	// Model names the chat model used for summaries.
	Model string `env:"MODEL" envDefault:"gpt-4o-mini"`
	// Timeout bounds one generation request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"20s"`
}

// Enabled reports whether the external service should be called at all.
func (c Narrative) Enabled() bool {
	return c.APIKey != ""
}
