package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moodtracker-backend/models"

	"github.com/google/generative-ai-go/genai"
)

const (
	reflectionModel     = "gemini-1.5-flash"
	reflectionMaxLength = 300
)

// TextGenerator produces a short completion for a prompt. It is an interface
// so reflection logic can be tested without calling Gemini.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator generates text with the Gemini API
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator wraps a Gemini client
func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

// Generate runs the prompt against the reflection model
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(reflectionModel)
	model.SetMaxOutputTokens(150)
	model.SetTemperature(0.7)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from model")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}

// ReflectionWeather is the optional weather context for a reflection request
type ReflectionWeather struct {
	Description string `json:"description"`
	Temperature int    `json:"temperature"`
}

// Reflection is an AI-generated wellness recommendation
type Reflection struct {
	Recommendation string             `json:"recommendation"`
	Mood           models.MoodLabel   `json:"mood"`
	Weather        *ReflectionWeather `json:"weather"`
	Timestamp      time.Time          `json:"timestamp"`
}

// ReflectionService produces a short wellness recommendation from the user's
// mood and, when available, the current weather. A model failure degrades to
// a static per-mood recommendation rather than an error.
type ReflectionService struct {
	generator TextGenerator
	now       func() time.Time
}

// NewReflectionService creates a new reflection service
func NewReflectionService(generator TextGenerator) *ReflectionService {
	return &ReflectionService{generator: generator, now: time.Now}
}

// moodDescription phrases a mood label for the prompt
func moodDescription(mood models.MoodLabel) string {
	switch mood {
	case models.MoodHappy:
		return "feeling happy and positive"
	case models.MoodCalm:
		return "feeling calm and relaxed"
	case models.MoodSad:
		return "feeling sad or down"
	case models.MoodAngry:
		return "feeling angry or frustrated"
	}
	return "feeling neutral"
}

// Recommend generates a recommendation for the mood and optional weather
func (s *ReflectionService) Recommend(ctx context.Context, mood models.MoodLabel, weather *ReflectionWeather) (*Reflection, error) {
	weatherText := ""
	if weather != nil {
		weatherText = fmt.Sprintf(" The weather is %s with a temperature of %d°C.", weather.Description, weather.Temperature)
	}

	prompt := fmt.Sprintf("You are a thoughtful wellness assistant. The user is %s.%s "+
		"Provide a brief, personalized recommendation for a small, actionable activity they can do today "+
		"to improve their well-being. Keep it to 2-3 sentences, warm and encouraging.",
		moodDescription(mood), weatherText)

	recommendation := ""
	if s.generator != nil {
		text, err := s.generator.Generate(ctx, prompt)
		if err == nil {
			recommendation = strings.TrimSpace(text)
			if len(recommendation) > reflectionMaxLength {
				recommendation = strings.TrimSpace(recommendation[:reflectionMaxLength]) + "..."
			}
		}
	}

	// A short or empty completion is treated as a failure
	if len(recommendation) < 10 {
		recommendation = fallbackRecommendation(mood, weather)
	}

	return &Reflection{
		Recommendation: recommendation,
		Mood:           mood,
		Weather:        weather,
		Timestamp:      s.now(),
	}, nil
}

// fallbackRecommendation returns the static per-mood text used when the model
// call fails or produces nothing useful
func fallbackRecommendation(mood models.MoodLabel, weather *ReflectionWeather) string {
	var recommendation string
	switch mood {
	case models.MoodHappy:
		recommendation = "Take a moment to share your positive energy with someone else. A simple message or act of kindness can multiply your joy and brighten someone else's day."
	case models.MoodCalm:
		recommendation = "Maintain this peaceful state by spending a few minutes in nature or practicing deep breathing. This calm energy is valuable—protect it."
	case models.MoodSad:
		recommendation = "Be gentle with yourself today. Consider doing something small that brings you comfort, like listening to your favorite music or taking a warm bath."
	case models.MoodAngry:
		recommendation = "Channel this energy into something physical like a walk or exercise. Sometimes movement helps process difficult emotions and brings clarity."
	default:
		recommendation = "This is a good moment for reflection. Try journaling or doing something creative—it can help you understand what you need right now."
	}

	if weather != nil {
		desc := strings.ToLower(weather.Description)
		if strings.Contains(desc, "sunny") || strings.Contains(desc, "clear") {
			recommendation += " The beautiful weather today is perfect for spending time outdoors."
		} else if strings.Contains(desc, "rain") || strings.Contains(desc, "cloud") {
			recommendation += " The cozy weather makes it a great day for indoor activities."
		}
	}

	return recommendation
}
