// Package tui fills a form definition interactively in the terminal.
//
// A Session prompts each field through a PromptDriver (survey by default),
// writes the answer to the form store and re-asks while the field is
// invalid. Password entries print the strength meter summary, and the run
// ends with the derived submit button state.
package tui
