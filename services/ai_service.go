package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/edufeedback/edu_feedback/configs"
	"github.com/edufeedback/edu_feedback/models"
)

const defaultHFBaseURL = "https://api-inference.huggingface.co"

// AIService wraps the Hugging Face hosted inference API. Every public method
// degrades to a documented safe default instead of returning an error, so
// AI-provider unavailability never blocks the core feedback flow.
type AIService struct {
	BaseURL       string
	Token         string
	Model         string
	FallbackModel string
	Client        *http.Client
}

var AI *AIService

func InitAIService() {
	AI = NewAIService()
	if AI.Token == "" {
		log.Println("⚠️ HF_API_TOKEN not set, AI features will return fallback responses")
	} else {
		log.Println("✅ AI service initialized successfully.")
	}
}

func NewAIService() *AIService {
	return &AIService{
		BaseURL:       config.ConfigOr("HF_BASE_URL", defaultHFBaseURL),
		Token:         config.Config("HF_API_TOKEN"),
		Model:         config.ConfigOr("HF_MODEL", "mistralai/Mistral-7B-Instruct-v0.2"),
		FallbackModel: config.ConfigOr("HF_FALLBACK_MODEL", "google/flan-t5-large"),
		Client:        &http.Client{Timeout: 60 * time.Second},
	}
}

type hfRequestPayload struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		MaxNewTokens   int  `json:"max_new_tokens"`
		ReturnFullText bool `json:"return_full_text"`
	} `json:"parameters"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

type hfStatusError struct {
	Status int
	Detail string
}

func (e *hfStatusError) Error() string {
	return fmt.Sprintf("hugging face request failed (%d): %s", e.Status, e.Detail)
}

// hfGeneration covers the two documented response shapes: a list of
// generations, or a chat-completion style choices array. Anything else is a
// decode failure and the caller falls back.
type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

type hfChatResponse struct {
	GeneratedText string `json:"generated_text"`
	Choices       []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *AIService) request(model, prompt string) (string, error) {
	if s.Token == "" {
		return "", errors.New("hugging face API token is not configured (set HF_API_TOKEN)")
	}

	payload := hfRequestPayload{Inputs: prompt}
	payload.Parameters.MaxNewTokens = 512
	payload.Parameters.ReturnFullText = false
	payload.Options.WaitForModel = true

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s", s.BaseURL, model)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		detail := resp.Status
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &errBody) == nil {
			if errBody.Error != "" {
				detail = errBody.Error
			} else if errBody.Message != "" {
				detail = errBody.Message
			}
		}
		return "", &hfStatusError{Status: resp.StatusCode, Detail: detail}
	}

	var generations []hfGeneration
	if err := json.Unmarshal(raw, &generations); err == nil && len(generations) > 0 && generations[0].GeneratedText != "" {
		return generations[0].GeneratedText, nil
	}

	var chat hfChatResponse
	if err := json.Unmarshal(raw, &chat); err == nil {
		if chat.GeneratedText != "" {
			return chat.GeneratedText, nil
		}
		if len(chat.Choices) > 0 && chat.Choices[0].Message.Content != "" {
			return chat.Choices[0].Message.Content, nil
		}
	}

	return "", fmt.Errorf("unrecognized inference response: %s", string(raw))
}

// generate tries the primary model and falls back to the secondary one on
// the provider statuses that mean "this model is unavailable right now".
func (s *AIService) generate(prompt string) (string, error) {
	text, err := s.request(s.Model, prompt)
	if err == nil {
		return text, nil
	}

	var statusErr *hfStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Status {
		case http.StatusForbidden, http.StatusNotFound, http.StatusGone, http.StatusServiceUnavailable:
			log.Printf("HF model '%s' failed (%d). Falling back to '%s'.", s.Model, statusErr.Status, s.FallbackModel)
			return s.request(s.FallbackModel, prompt)
		}
	}
	return "", err
}

// generateJSON prompts the model for a JSON-only answer and decodes it into
// out. A decode failure is returned to the caller, which substitutes its
// documented default.
func (s *AIService) generateJSON(instruction, input string, out interface{}) error {
	prompt := instruction + "\n\nReturn only valid JSON, no extra text.\n\nINPUT:\n" + input

	text, err := s.generate(prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), out); err != nil {
		return fmt.Errorf("failed to parse model JSON response: %w", err)
	}
	return nil
}

type SentimentAnalysis struct {
	Sentiment string   `json:"sentiment"`
	Score     float64  `json:"score"`
	Keywords  []string `json:"keywords"`
}

func neutralSentiment() SentimentAnalysis {
	return SentimentAnalysis{Sentiment: "neutral", Score: 0, Keywords: []string{}}
}

func (s *AIService) AnalyzeSentiment(comment string) SentimentAnalysis {
	if strings.TrimSpace(comment) == "" {
		return neutralSentiment()
	}

	instruction := "You are a sentiment analysis expert. Analyze the sentiment of student feedback about teachers. " +
		"Return a JSON object with: sentiment (\"positive\", \"negative\", or \"neutral\"), " +
		"score (number from -1 to 1), and keywords (array of 3-5 key words or phrases)."

	var result SentimentAnalysis
	if err := s.generateJSON(instruction, comment, &result); err != nil {
		log.Printf("Sentiment analysis error: %v", err)
		return neutralSentiment()
	}

	if result.Sentiment != "positive" && result.Sentiment != "negative" && result.Sentiment != "neutral" {
		result.Sentiment = "neutral"
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}
	return result
}

type QualityScore struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

func (s *AIService) ScoreFeedbackQuality(comment string, rating int) QualityScore {
	if strings.TrimSpace(comment) == "" {
		return QualityScore{Score: 1, Reasoning: "No comment provided"}
	}

	instruction := "You are an education feedback quality assessor. Rate the quality and helpfulness of student feedback on a scale of 1-10. " +
		"Consider specificity, constructiveness, actionable insights, and clarity. " +
		"Return JSON with: score (number 1-10) and reasoning (brief explanation)."

	var result QualityScore
	input := fmt.Sprintf("Rating: %d/5, Comment: %s", rating, comment)
	if err := s.generateJSON(instruction, input, &result); err != nil {
		log.Printf("Quality scoring error: %v", err)
		return QualityScore{Score: 5, Reasoning: "Unable to assess quality"}
	}

	if result.Score < 1 {
		result.Score = 1
	}
	if result.Score > 10 {
		result.Score = 10
	}
	if result.Reasoning == "" {
		result.Reasoning = "Average quality feedback"
	}
	return result
}

type FeedbackSummary struct {
	Summary          string   `json:"summary"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	OverallSentiment string   `json:"overall_sentiment"`
}

func (s *AIService) GenerateFeedbackSummary(feedbackList []models.Feedback) FeedbackSummary {
	if len(feedbackList) == 0 {
		return FeedbackSummary{
			Summary:          "No feedback available yet.",
			Strengths:        []string{},
			Improvements:     []string{},
			OverallSentiment: "neutral",
		}
	}

	var lines []string
	for _, fb := range feedbackList {
		if fb.Comment != nil && strings.TrimSpace(*fb.Comment) != "" {
			lines = append(lines, fmt.Sprintf("[Rating: %d/5] %s", fb.Rating, *fb.Comment))
		}
	}

	if len(lines) == 0 {
		return FeedbackSummary{
			Summary:          fmt.Sprintf("Received %d ratings with no written comments.", len(feedbackList)),
			Strengths:        []string{},
			Improvements:     []string{},
			OverallSentiment: "neutral",
		}
	}

	instruction := "You are an educational analyst. Summarize student feedback for a teacher. " +
		"Return JSON with: summary (2-3 sentence overview), strengths (array of 3-5 key strengths), " +
		"improvements (array of 3-5 areas for improvement), overall_sentiment (\"positive\", \"negative\", or \"mixed\")."

	var result FeedbackSummary
	if err := s.generateJSON(instruction, strings.Join(lines, "\n"), &result); err != nil {
		log.Printf("Summary generation error: %v", err)
		return FeedbackSummary{
			Summary:          "Unable to generate summary at this time.",
			Strengths:        []string{},
			Improvements:     []string{},
			OverallSentiment: "neutral",
		}
	}

	if result.Summary == "" {
		result.Summary = "Summary unavailable"
	}
	if result.Strengths == nil {
		result.Strengths = []string{}
	}
	if result.Improvements == nil {
		result.Improvements = []string{}
	}
	if result.OverallSentiment == "" {
		result.OverallSentiment = "neutral"
	}
	return result
}

type TeacherRecommendation struct {
	TeacherID string  `json:"teacherId"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

func (s *AIService) RecommendTeachers(preferences string, teachers []models.Teacher) []TeacherRecommendation {
	if len(teachers) == 0 {
		return []TeacherRecommendation{}
	}

	var info []string
	for _, t := range teachers {
		bio := "N/A"
		if t.Bio != nil && *t.Bio != "" {
			bio = *t.Bio
		}
		info = append(info, fmt.Sprintf("ID: %s, Name: %s, Subject: %s, Dept: %s, Rating: %.2f, Bio: %s",
			t.ID, t.Name, t.Subject, t.Department, t.AverageRating, bio))
	}

	instruction := "You are a teacher recommendation system. Based on student preferences and the list of available teachers, " +
		"recommend the top 3 most suitable teachers. Return JSON with a \"recommendations\" array; each item has: " +
		"teacherId (string), score (number 0-100), reasoning (string)."

	var result struct {
		Recommendations []TeacherRecommendation `json:"recommendations"`
	}
	input := fmt.Sprintf("Student preferences: %s\n\nAvailable teachers:\n%s", preferences, strings.Join(info, "\n"))
	if err := s.generateJSON(instruction, input, &result); err != nil {
		log.Printf("Recommendation error: %v", err)
		return []TeacherRecommendation{}
	}

	if len(result.Recommendations) > 3 {
		return result.Recommendations[:3]
	}
	if result.Recommendations == nil {
		return []TeacherRecommendation{}
	}
	return result.Recommendations
}

func (s *AIService) GenerateReplyTemplates(comment string) []string {
	if strings.TrimSpace(comment) == "" {
		return []string{}
	}

	instruction := "You help teachers write short, polite, and professional replies to student feedback. " +
		"Given the student's comment, generate 2-3 different reply options that: " +
		"1) thank the student, 2) acknowledge their point, and 3) briefly mention an action or intention. " +
		"Return JSON with a single field 'templates' which is an array of reply strings."

	var result struct {
		Templates []string `json:"templates"`
	}
	if err := s.generateJSON(instruction, comment, &result); err != nil {
		log.Printf("Reply template generation error: %v", err)
		return []string{}
	}

	templates := make([]string, 0, 3)
	for _, t := range result.Templates {
		if strings.TrimSpace(t) != "" {
			templates = append(templates, t)
		}
		if len(templates) == 3 {
			break
		}
	}
	return templates
}

// ImproveFeedback rewrites a comment to be clearer and more constructive. On
// any provider failure it returns a lightly wrapped original so the student
// always gets something usable back.
func (s *AIService) ImproveFeedback(comment string) string {
	original := strings.TrimSpace(comment)
	if original == "" {
		return original
	}

	instruction := "You are an assistant that rewrites student feedback about a lecture or teacher. " +
		"Keep the original meaning, but make the text more polite, clear, and constructive. " +
		"Do not add new complaints or compliments that were not there. Return only the rewritten feedback."

	prompt := instruction + "\n\nOriginal feedback:\n" + original + "\n\nImproved feedback:"
	improved, err := s.generate(prompt)
	if err != nil {
		log.Printf("Improve feedback error: %v", err)
		return "Thank you for your feedback. " + original
	}

	normalized := strings.TrimSpace(improved)
	if normalized == "" {
		return "Thank you for your feedback. " + original
	}
	if normalized == original {
		return "Thank you for your detailed feedback. " + original
	}
	return normalized
}

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (s *AIService) Chat(userMessage string, history []ChatTurn) string {
	var historyLines []string
	for _, turn := range history {
		historyLines = append(historyLines, strings.ToUpper(turn.Role)+": "+turn.Content)
	}

	systemPrompt := "You are EduBot, a helpful assistant for the EduFeedback system - a lecture feedback platform. " +
		"You help students and teachers with: how to give feedback, how to view feedback, understanding ratings and analytics, navigation help, and teacher profile information. " +
		"Be concise, friendly, and helpful. If you don't know something, admit it."

	prompt := systemPrompt + "\n\nConversation so far (if any):\n"
	if len(historyLines) > 0 {
		prompt += strings.Join(historyLines, "\n") + "\n\n"
	}
	prompt += "USER: " + userMessage + "\nASSISTANT:"

	text, err := s.generate(prompt)
	if err != nil {
		log.Printf("Chatbot error: %v", err)
		var statusErr *hfStatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusTooManyRequests {
			return "AI service is temporarily unavailable due to quota limits. Please contact the admin."
		}
		return "I'm experiencing technical difficulties. Please try again later."
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "I'm sorry, I couldn't process that."
	}
	return trimmed
}
