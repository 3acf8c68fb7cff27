package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"linkedpost/domain/model"
	"linkedpost/domain/repository"
	"linkedpost/infrastructure/configuration"
	"linkedpost/infrastructure/logger"
)

// Client calls the Gemini generateContent REST endpoint with a fixed
// generation configuration and safety settings.
type Client struct {
	cfg        configuration.Gemini
	httpClient *http.Client
}

func NewGeminiClient(cfg configuration.Gemini) repository.IPostGenerator {
	return &Client{cfg: cfg, httpClient: http.DefaultClient}
}

type generateRequest struct {
	Contents         []content       `json:"contents"`
	GenerationConfig generationCfg   `json:"generationConfig"`
	SafetySettings   []safetySetting `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationCfg struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	CandidateCount  int     `json:"candidateCount"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GeneratePost builds the knowledge-sharing prompt and asks the model for a
// LinkedIn post. On any backend failure the returned text is one of the known
// sentinel strings so callers can recognize it inline; the error carries the
// specific cause.
func (c *Client) GeneratePost(ctx context.Context, title, description, transcript string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: BuildPrompt(title, description, transcript)}}}},
		GenerationConfig: generationCfg{
			Temperature:     c.cfg.Temperature,
			TopP:            c.cfg.TopP,
			TopK:            c.cfg.TopK,
			CandidateCount:  c.cfg.CandidateCount,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
		SafetySettings: []safetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: c.cfg.Safety.Harassment},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: c.cfg.Safety.HateSpeech},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: c.cfg.Safety.SexuallyExplicit},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: c.cfg.Safety.DangerousContent},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return model.SentinelGenerationFailed, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return model.SentinelGenerationFailed, fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error generating LinkedIn post with Gemini API")
		return model.SentinelGenerationFailed, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.SentinelGenerationFailed, fmt.Errorf("failed to read generation response: %w", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.SentinelGenerationFailed, fmt.Errorf("failed to parse generation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		logger.GetLogger().WithField("status", resp.StatusCode).WithField("message", msg).Error("Gemini API returned an error")
		return model.SentinelGenerationFailed, fmt.Errorf("generation failed: %s", msg)
	}

	text := extractText(parsed)
	if text == "" {
		return model.SentinelGenerationEmpty, nil
	}
	return text, nil
}

func extractText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}

// BuildPrompt assembles the instruction for the model. The post must read as
// personally learned knowledge: no mention of the video, no links. Structure
// directives (bullets, emphasis, emoji) are only added when a transcript is
// available to support them.
func BuildPrompt(title, description, transcript string) string {
	var b strings.Builder
	b.WriteString("Create a **catchy and engaging** LinkedIn post to share knowledge and key takeaways\n")
	b.WriteString("inspired by a YouTube video I recently watched.\n\n")
	fmt.Fprintf(&b, "Video Title: %s\n", title)
	fmt.Fprintf(&b, "Video Description: %s\n\n", description)

	if transcript != "" {
		b.WriteString("Video Transcript (for context - use this to understand the video's content in detail and extract key learnings):\n")
		b.WriteString(transcript)
		b.WriteString("\n\n")
		b.WriteString("Identify the most valuable insights, key concepts, and actionable advice from the video and transcript.\n")
		b.WriteString("Craft a LinkedIn post that shares this knowledge in your own words, as if you are sharing your learnings with your network.\n")
		b.WriteString("Focus on providing value and sparking discussion among your LinkedIn connections.\n")
		b.WriteString("Do NOT mention that this is from a YouTube video and DO NOT include any YouTube link in the post.\n\n")
		b.WriteString("**Structure the LinkedIn post for readability and impact.**\n")
		b.WriteString("- **Use bullet points or numbered lists to highlight key takeaways** if appropriate and if they emerge naturally from the content.\n")
		b.WriteString("- **Incorporate bold and *italic* text to emphasize important phrases and keywords.**\n")
		b.WriteString("- **Use relevant emojis** to make the post visually appealing and engaging.\n")
	}

	b.WriteString("\nThe LinkedIn post should be:\n")
	b.WriteString("- Thought-provoking and valuable to a professional audience.\n")
	b.WriteString("- Clearly articulate the key takeaways or insights, **ideally in point form if feasible**.\n")
	b.WriteString("- Encourage engagement and discussion in the comments.\n")
	b.WriteString("- Include relevant professional hashtags (e.g., #leadership, #innovation, #technology, #career, #learning, etc.).\n")
	b.WriteString("- Use emojis to make it visually appealing and engaging.\n")
	b.WriteString("- Aim for a length suitable for LinkedIn (around 3-4 short paragraphs).\n\n")
	b.WriteString("LinkedIn Post (WITHOUT YouTube Link):\n")
	return b.String()
}
