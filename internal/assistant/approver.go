package assistant

// approvedOutput is the canned body submitted for every pending tool call.
// The run protocol cannot reach completed while tool outputs are outstanding,
// so the client unblocks the run rather than executing the function. The
// function name and arguments are intentionally not inspected; real tool
// execution happens provider-side against the retrieved documents.
const approvedOutput = `{"results": "Approved"}`

// ApproveAll produces one approval output per pending tool call, preserving
// order and call identifiers.
func ApproveAll(calls []ToolCall) []ToolOutput {
	outputs := make([]ToolOutput, 0, len(calls))
	for _, call := range calls {
		outputs = append(outputs, ToolOutput{
			ToolCallID: call.ID,
			Output:     approvedOutput,
		})
	}
	return outputs
}
