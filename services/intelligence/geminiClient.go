package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lawease/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

const analysisPrompt = `You are an expert in Indian law. Analyze the legal problem below and answer with a single JSON object using exactly these keys:
{
  "legalIssueCategory": string,
  "relevantConstitutionalArticles": [string],
  "applicableLaws": [string],
  "userRights": [string],
  "recommendedProcedures": [string],
  "importantDeadlines": [string],
  "precedentCases": [string],
  "regionalVariations": [string]
}
Do not include any text outside the JSON object.

Problem:
%s`

const summaryPrompt = `Summarize the following legal consultation between a user and an AI legal mentor. Cover the user's issue, the advice given and the recommended next steps in plain language, in no more than 200 words.

Transcript:
%s`

type GeminiClient struct {
	client        *genai.Client
	analysisModel *genai.GenerativeModel
	textModel     *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	analysis := client.GenerativeModel(modelName)
	analysis.ResponseMIMEType = "application/json"
	analysis.SetTemperature(0.2)

	text := client.GenerativeModel(modelName)
	text.SetTemperature(0.4)

	return &GeminiClient{client: client, analysisModel: analysis, textModel: text}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func (g *GeminiClient) AnalyzeLegalProblem(ctx context.Context, problem string) (*models.LegalAnalysis, error) {
	raw, err := g.generate(ctx, g.analysisModel, fmt.Sprintf(analysisPrompt, problem))
	if err != nil {
		return nil, err
	}
	return ParseAnalysis(raw)
}

func (g *GeminiClient) Summarize(ctx context.Context, transcript string) (string, error) {
	out, err := g.generate(ctx, g.textModel, fmt.Sprintf(summaryPrompt, transcript))
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errors.New("gemini returned an empty summary")
	}
	return out, nil
}

// ParseAnalysis decodes the model's JSON answer, tolerating a markdown code
// fence around it.
func ParseAnalysis(raw string) (*models.LegalAnalysis, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var analysis models.LegalAnalysis
	if err := json.Unmarshal([]byte(s), &analysis); err != nil {
		return nil, fmt.Errorf("decode legal analysis: %w", err)
	}
	return &analysis, nil
}
