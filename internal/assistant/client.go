package assistant

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// runInstructions constrain answers to the documents attached to the
// assistant's file-search store.
const runInstructions = "Answer using only information found in the retrieved documents. " +
	"If the documents do not contain the answer, say that you don't know."

// Client implements ThreadAPI on top of the official OpenAI SDK. It issues
// single authenticated requests with no retry logic of its own.
type Client struct {
	api         openai.Client
	assistantID string
}

// NewClient creates a transport client for the given assistant.
func NewClient(apiKey, assistantID string) *Client {
	return &Client{
		api:         openai.NewClient(option.WithAPIKey(apiKey)),
		assistantID: assistantID,
	}
}

// CreateThread creates a new conversation thread.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.api.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return "", err
	}
	return thread.ID, nil
}

// AddUserMessage appends a user message to the thread.
func (c *Client) AddUserMessage(ctx context.Context, threadID, text string) error {
	_, err := c.api.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: openai.BetaThreadMessageNewParamsRoleUser,
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(text),
		},
	})
	return err
}

// StartRun starts a run with the file-search tool enabled.
func (c *Client) StartRun(ctx context.Context, threadID string) (*Run, error) {
	run, err := c.api.Beta.Threads.Runs.New(ctx, threadID, openai.BetaThreadRunNewParams{
		AssistantID:            c.assistantID,
		AdditionalInstructions: openai.String(runInstructions),
		Tools: []openai.AssistantToolUnionParam{
			{OfFileSearch: &openai.FileSearchToolParam{}},
		},
	})
	if err != nil {
		return nil, err
	}
	return convertRun(run), nil
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	run, err := c.api.Beta.Threads.Runs.Get(ctx, threadID, runID)
	if err != nil {
		return nil, err
	}
	return convertRun(run), nil
}

// SubmitToolOutputs submits one batch of tool outputs for a paused run.
func (c *Client) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) error {
	params := openai.BetaThreadRunSubmitToolOutputsParams{
		ToolOutputs: make([]openai.BetaThreadRunSubmitToolOutputsParamsToolOutput, 0, len(outputs)),
	}
	for _, out := range outputs {
		params.ToolOutputs = append(params.ToolOutputs, openai.BetaThreadRunSubmitToolOutputsParamsToolOutput{
			ToolCallID: openai.String(out.ToolCallID),
			Output:     openai.String(out.Output),
		})
	}
	_, err := c.api.Beta.Threads.Runs.SubmitToolOutputs(ctx, threadID, runID, params)
	return err
}

// LatestAssistantText returns the newest assistant message on the thread.
func (c *Client) LatestAssistantText(ctx context.Context, threadID string) (string, bool, error) {
	page, err := c.api.Beta.Threads.Messages.List(ctx, threadID, openai.BetaThreadMessageListParams{
		Order: openai.BetaThreadMessageListParamsOrderDesc,
		Limit: openai.Int(20),
	})
	if err != nil {
		return "", false, err
	}

	for _, msg := range page.Data {
		if msg.Role != openai.MessageRoleAssistant {
			continue
		}
		var parts []string
		for _, block := range msg.Content {
			if block.Type == "text" {
				parts = append(parts, block.Text.Value)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n"), true, nil
		}
	}
	return "", false, nil
}

// convertRun maps an SDK run onto the orchestrator's view of it.
func convertRun(run *openai.Run) *Run {
	r := &Run{
		ID:     run.ID,
		Status: RunStatus(run.Status),
	}
	if run.LastError.Message != "" {
		r.LastError = run.LastError.Message
	}
	if run.Status == openai.RunStatusRequiresAction &&
		run.RequiredAction.Type == "submit_tool_outputs" {
		for _, call := range run.RequiredAction.SubmitToolOutputs.ToolCalls {
			r.PendingCalls = append(r.PendingCalls, ToolCall{
				ID:   call.ID,
				Name: call.Function.Name,
			})
		}
	}
	return r
}
