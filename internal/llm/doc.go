// Package llm defines the uniform call contract that every language-model
// vendor sits behind.
//
// A Gateway takes a system prompt and an ordered message list and returns the
// model's final text. It owns no business logic: prompts, decoding, and
// validation belong to the callers (intent extraction, candidate selection).
//
// # Providers
//
// Vendor adapters live in subpackages (openai, anthropic, gemini, ollama) and
// are chosen once at startup by the providers package from configuration.
// LiteLLM is served by the openai adapter because it speaks the same
// chat-completions protocol.
//
// # Errors
//
// Adapters report every transport or provider failure as an apperr LLM call
// error. No adapter retries.
package llm
