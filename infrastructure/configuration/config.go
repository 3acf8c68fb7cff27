package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"linkedpost/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App        App        `json:"app"`
	YouTube    YouTube    `json:"youtube"`
	Transcript Transcript `json:"transcript"`
	Gemini     Gemini     `json:"gemini"`
	LinkedIn   LinkedIn   `json:"linkedin"`
}

type App struct {
	Port        int      `json:"port"`
	FrontendURL string   `json:"frontendURL"`
	CORSOrigins []string `json:"corsOrigins"`
}

type YouTube struct {
	APIKey string `json:"apiKey"`
}

type Transcript struct {
	BaseURL string `json:"baseURL"`
	APIKey  string `json:"apiKey"`
}

// Gemini holds the generative backend settings. Generation parameters and
// safety thresholds are fixed by default but remain configurable so a
// different backend deployment can tune them.
type Gemini struct {
	APIKey          string  `json:"apiKey"`
	BaseURL         string  `json:"baseURL"`
	Model           string  `json:"model"`
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	CandidateCount  int     `json:"candidateCount"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Safety          Safety  `json:"safety"`
}

// Safety maps the four harm categories to blocking thresholds.
type Safety struct {
	Harassment       string `json:"harassment"`
	HateSpeech       string `json:"hateSpeech"`
	SexuallyExplicit string `json:"sexuallyExplicit"`
	DangerousContent string `json:"dangerousContent"`
}

type LinkedIn struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectURI"`
}

var C Config

func init() {
	LoadConfig()
}

// LoadConfig reads config(.json) named by ENV, then layers environment
// variables and defaults on top. Call Validate afterwards for the fail-fast
// check of required credentials.
func LoadConfig() {
	viper.SetConfigName(getConfigName())
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found; relying on environment variables")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}

	applyEnvOverrides(&C)
	applyDefaults(&C)
}

func getConfigName() string {
	name := "config"
	if env := os.Getenv("ENV"); env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func applyEnvOverrides(c *Config) {
	c.YouTube.APIKey = getConfigValue(c.YouTube.APIKey, "YOUTUBE_API_KEY", "")
	c.Gemini.APIKey = getConfigValue(c.Gemini.APIKey, "GEMINI_API_KEY", "")
	c.LinkedIn.ClientID = getConfigValue(c.LinkedIn.ClientID, "LINKEDIN_CLIENT_ID", "")
	c.LinkedIn.ClientSecret = getConfigValue(c.LinkedIn.ClientSecret, "LINKEDIN_CLIENT_SECRET", "")
	c.LinkedIn.RedirectURI = getConfigValue(c.LinkedIn.RedirectURI, "LINKEDIN_REDIRECT_URI", "")
	c.Transcript.BaseURL = getConfigValue(c.Transcript.BaseURL, "TRANSCRIPT_API_URL", "")
	c.Transcript.APIKey = getConfigValue(c.Transcript.APIKey, "TRANSCRIPT_API_KEY", "")
	c.App.FrontendURL = getConfigValue(c.App.FrontendURL, "FRONTEND_URL", "")

	// Port resolution order (env overrides config): APP_PORT -> PORT -> config
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	}
}

func applyDefaults(c *Config) {
	if c.App.Port == 0 {
		c.App.Port = 10001
	}
	if c.App.FrontendURL == "" {
		c.App.FrontendURL = "/"
	}
	if len(c.App.CORSOrigins) == 0 {
		c.App.CORSOrigins = []string{"http://localhost:4200", "http://localhost:3000"}
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash-exp"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.7
	}
	if c.Gemini.TopP == 0 {
		c.Gemini.TopP = 0.8
	}
	if c.Gemini.TopK == 0 {
		c.Gemini.TopK = 40
	}
	if c.Gemini.CandidateCount == 0 {
		c.Gemini.CandidateCount = 1
	}
	if c.Gemini.MaxOutputTokens == 0 {
		c.Gemini.MaxOutputTokens = 800
	}
	const defaultThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	if c.Gemini.Safety.Harassment == "" {
		c.Gemini.Safety.Harassment = defaultThreshold
	}
	if c.Gemini.Safety.HateSpeech == "" {
		c.Gemini.Safety.HateSpeech = defaultThreshold
	}
	if c.Gemini.Safety.SexuallyExplicit == "" {
		c.Gemini.Safety.SexuallyExplicit = defaultThreshold
	}
	if c.Gemini.Safety.DangerousContent == "" {
		c.Gemini.Safety.DangerousContent = defaultThreshold
	}
	if c.Transcript.BaseURL == "" {
		c.Transcript.BaseURL = "https://api.youtubetranscripts.io"
	}
}

// Validate returns an error naming every missing required setting. The
// process must not start without them.
func (c *Config) Validate() error {
	var missing []string
	if c.YouTube.APIKey == "" {
		missing = append(missing, "youtube.apiKey (YOUTUBE_API_KEY)")
	}
	if c.Gemini.APIKey == "" {
		missing = append(missing, "gemini.apiKey (GEMINI_API_KEY)")
	}
	if c.LinkedIn.ClientID == "" {
		missing = append(missing, "linkedin.clientId (LINKEDIN_CLIENT_ID)")
	}
	if c.LinkedIn.ClientSecret == "" {
		missing = append(missing, "linkedin.clientSecret (LINKEDIN_CLIENT_SECRET)")
	}
	if c.LinkedIn.RedirectURI == "" {
		missing = append(missing, "linkedin.redirectURI (LINKEDIN_REDIRECT_URI)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// getConfigValue prefers the environment variable, then the config value
// (ignoring obvious placeholders), then the default.
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}
