// Package classifier gates complaint content through an external
// OpenAI-compatible chat-completions endpoint (Groq). The contract is strict:
// the model must answer APPROVE or REJECT, and every failure of the service,
// the transport, or the response shape maps to a rejection. There is no
// fallback acceptance path.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"hosteldesk/backend/internal/config"
)

// systemPrompt pins the classifier to hostel facility topics and a single
// categorical answer token.
const systemPrompt = `You are a complaint validator. Respond with ONLY "APPROVE" if the text is a legitimate hostel complaint about facilities inside the rooms (which include LAN, lights, fans, cupboards, beds, ports, wires, MCB etc.) / washrooms, maintenance, food, cleanliness, noise, or accommodation issues. Respond with "REJECT" for anything else including spam, tests, random text which you think is not related to complaints.`

const acceptToken = "APPROVE"

// Verdict is the classifier's decision for one submission attempt.
// It is never persisted; it only gates the insert and shapes the response.
type Verdict struct {
	Accepted bool
	Reason   string
}

// Classifier decides whether complaint text is on-topic.
type Classifier interface {
	Classify(ctx context.Context, text string) Verdict
}

// GroqClassifier calls the Groq chat-completions API.
type GroqClassifier struct {
	APIKey     string
	APIURL     string
	Model      string
	HTTPClient *http.Client
}

func NewGroqClassifier(cfg *config.Config) *GroqClassifier {
	return &GroqClassifier{
		APIKey: cfg.GroqAPIKey,
		APIURL: cfg.GroqAPIURL,
		Model:  cfg.GroqModel,
		HTTPClient: &http.Client{
			Timeout: config.ClassifierTimeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Classify runs the complaint text through the external classifier.
// Every branch terminates in a definite Verdict; uncertainty rejects.
func (c *GroqClassifier) Classify(ctx context.Context, text string) Verdict {
	// No configuration = reject everything.
	if c.APIKey == "" || c.APIURL == "" {
		return Verdict{Accepted: false, Reason: "validation service not configured"}
	}

	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Validate this complaint: " + text},
		},
		MaxTokens:   config.ClassifierMaxTokens,
		Temperature: 0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		log.Printf("ERROR: Failed to marshal classifier request: %v", err)
		return Verdict{Accepted: false, Reason: "validation service unavailable"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(jsonData))
	if err != nil {
		log.Printf("ERROR: Failed to build classifier request: %v", err)
		return Verdict{Accepted: false, Reason: "validation service unavailable"}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// Covers transport failures and the 15s timeout.
		log.Printf("ERROR: Classifier request failed: %v", err)
		return Verdict{Accepted: false, Reason: "validation service unavailable"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("ERROR: Failed to read classifier response: %v", err)
		return Verdict{Accepted: false, Reason: "validation service unavailable"}
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("ERROR: Classifier returned status %d: %s", resp.StatusCode, string(body))
		return Verdict{Accepted: false, Reason: "validation service error"}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.Printf("ERROR: Failed to parse classifier response: %v", err)
		return Verdict{Accepted: false, Reason: "invalid validation response"}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return Verdict{Accepted: false, Reason: "invalid validation response"}
	}

	if containsAcceptToken(parsed.Choices[0].Message.Content) {
		return Verdict{Accepted: true, Reason: "approved by content validation"}
	}
	return Verdict{Accepted: false, Reason: "complaint rejected by content validation"}
}

// containsAcceptToken holds the whole fragile free-text contract in one
// place: normalize, then substring-match the accept token.
func containsAcceptToken(content string) bool {
	return strings.Contains(strings.ToUpper(strings.TrimSpace(content)), acceptToken)
}
