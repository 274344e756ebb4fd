// Package main hosts the promptseerr CLI.
//
// The command tree loads configuration once, builds the request pipeline
// (language model gateway, Overseerr client and the agent on top of them)
// and either serves it over HTTP or runs a single prompt from the terminal.
package main
