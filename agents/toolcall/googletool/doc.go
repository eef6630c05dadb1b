/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package googletool adapts the tool registry to Gemini function calling.

Declarations turn registered definitions into genai function declarations.
Incoming genai.FunctionCall values become toolcall.ToolCall values with
ToToolCall, and tool results go back to the model with Response:

	for _, fc := range resp.FunctionCalls() {
		result := reg.Dispatch(ctx, googletool.ToToolCall(fc), trace)
		parts = append(parts, &genai.Part{FunctionResponse: googletool.Response(fc, result)})
	}
*/
package googletool
