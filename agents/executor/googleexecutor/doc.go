/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package googleexecutor runs the Gemini function-calling loop.

Execute binds the request into the prompt, opens a chat with the registry's
function declarations and then alternates between the model and the tools:

	exec, err := googleexecutor.New[*Request](
		googleexecutor.ClientChats(client),
		prompt,
		googleexecutor.WithModel[*Request]("gemini-2.5-pro"),
		googleexecutor.WithSystemInstructions[*Request](system),
		googleexecutor.WithMaxTurns[*Request](50),
	)
	res, err := exec.Execute(ctx, req, registry)

Every function call in a response is dispatched in the order received, one at
a time, and all results go back to the model in a single message in that same
order. Names outside the registry get an error result rather than a dispatch.

A response without function calls ends the run with its text. A run whose
model is still calling tools after the turn budget fails with
ErrTurnBudgetExhausted. Rate limits and temporary server failures are retried
with exponential backoff.
*/
package googleexecutor
