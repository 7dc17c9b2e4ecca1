package brain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// careTool is the Claude tool definition for looking after the pet.
var careTool anthropic.ToolUnionParam

func init() {
	tool := anthropic.ToolUnionParamOfTool(
		anthropic.ToolInputSchemaParam{
			Type: "object",
			Properties: map[string]any{
				"action": map[string]any{
					"type":        "string",
					"enum":        careActions,
					"description": careActionDescription,
				},
				"kind": map[string]any{
					"type":        "string",
					"description": careKindDescription,
				},
			},
			Required: []string{"action"},
		},
		careToolName,
	)
	tool.OfTool.Description = anthropic.String(careToolDescription)
	careTool = tool
}

// claudeProvider implements Provider using the Anthropic Claude API.
type claudeProvider struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

func newClaudeProvider(apiKey, model string, maxTokens int64) *claudeProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &claudeProvider{
		client:    &client,
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
	}
}

func (c *claudeProvider) Send(ctx context.Context, systemPrompt string, history []Message) (*Response, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:  claudeMessages(history),
		Tools:     []anthropic.ToolUnionParam{careTool},
	})
	if err != nil {
		return nil, err
	}

	out := &Response{Done: resp.StopReason != anthropic.StopReasonToolUse}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			out.Text += block.AsText().Text
		case "tool_use":
			tu := block.AsToolUse()
			raw, err := json.Marshal(tu.Input)
			if err != nil {
				return nil, fmt.Errorf("encode tool input: %w", err)
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:    tu.ID,
				Name:  tu.Name,
				Input: raw,
			})
		}
	}
	return out, nil
}

// claudeMessages converts the agnostic history into Anthropic params.
// Tool results ride in a user turn, tool calls in an assistant turn.
func claudeMessages(history []Message) []anthropic.MessageParam {
	msgs := make([]anthropic.MessageParam, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case RoleUser:
			var blocks []anthropic.ContentBlockParamUnion
			for _, tr := range m.ToolResults {
				blocks = append(blocks, anthropic.NewToolResultBlock(tr.ID, tr.Content, tr.IsError))
			}
			if len(blocks) == 0 {
				blocks = append(blocks, anthropic.NewTextBlock(m.Text))
			}
			msgs = append(msgs, anthropic.NewUserMessage(blocks...))
		case RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if m.Text != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Text))
			}
			for _, tc := range m.ToolCalls {
				blocks = append(blocks, anthropic.NewToolUseBlock(tc.ID, tc.Input, tc.Name))
			}
			msgs = append(msgs, anthropic.NewAssistantMessage(blocks...))
		}
	}
	return msgs
}
