package brain

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// careDecl is the Gemini function declaration for looking after the pet.
var careDecl = &genai.FunctionDeclaration{
	Name:        careToolName,
	Description: careToolDescription,
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"action": {
				Type:        genai.TypeString,
				Enum:        careActions,
				Description: careActionDescription,
			},
			"kind": {
				Type:        genai.TypeString,
				Description: careKindDescription,
			},
		},
		Required: []string{"action"},
	},
}

// geminiProvider implements Provider using the Google Gemini API.
type geminiProvider struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

func newGeminiProvider(ctx context.Context, apiKey, model string, maxTokens int64) (*geminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &geminiProvider{
		client:    client,
		model:     model,
		maxTokens: int32(maxTokens),
	}, nil
}

func (g *geminiProvider) Send(ctx context.Context, systemPrompt string, history []Message) (*Response, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, ""),
		MaxOutputTokens:   g.maxTokens,
		Tools: []*genai.Tool{
			{FunctionDeclarations: []*genai.FunctionDeclaration{careDecl}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, geminiContents(history), config)
	if err != nil {
		return nil, err
	}

	calls := resp.FunctionCalls()
	out := &Response{Text: resp.Text(), Done: len(calls) == 0}
	for _, fc := range calls {
		raw, err := json.Marshal(fc.Args)
		if err != nil {
			return nil, fmt.Errorf("encode function args: %w", err)
		}
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:    fc.ID,
			Name:  fc.Name,
			Input: raw,
		})
	}
	return out, nil
}

// geminiContents converts the agnostic history into Gemini contents.
// Function responses are named after the tool and carry the call ID when
// Gemini assigned one.
func geminiContents(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}

		var parts []*genai.Part
		for _, tr := range m.ToolResults {
			resp := map[string]any{"output": tr.Content}
			if tr.IsError {
				resp["error"] = true
			}
			part := genai.NewPartFromFunctionResponse(tr.Name, resp)
			part.FunctionResponse.ID = tr.ID
			parts = append(parts, part)
		}
		if m.Text != "" {
			parts = append(parts, genai.NewPartFromText(m.Text))
		}
		for _, tc := range m.ToolCalls {
			var args map[string]any
			_ = json.Unmarshal(tc.Input, &args)
			part := genai.NewPartFromFunctionCall(tc.Name, args)
			part.FunctionCall.ID = tc.ID
			parts = append(parts, part)
		}
		contents = append(contents, &genai.Content{Role: string(role), Parts: parts})
	}
	return contents
}
