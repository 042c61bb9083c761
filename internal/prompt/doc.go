// Package prompt implements interactive console prompting primitives.
//
// It exposes IOConfirmationPrompter for y/n questions, IOMenuPrompter for
// numeric menu selections, and IOPausePrompter for press-Enter pauses. All
// prompters operate on injected readers and writers so interactive flows stay
// testable.
package prompt
