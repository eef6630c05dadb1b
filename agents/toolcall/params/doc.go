/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package params extracts typed tool arguments and shapes tool results.
//
// Every tool result is a flat map that is serialised back to the model. A
// successful call carries an "output" key, a failed call carries an "error"
// key, and either may carry extra context fields such as the path that was
// touched. Both provider adapters (googletool and claudetool) share these
// helpers so the model sees the same result shape regardless of provider.
package params
