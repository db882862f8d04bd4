package main

import "mentor-ai/backend/internal/cli"

// @title          Mentor AI API
// @version        1.0
// @description    Conversations with branching and context compression, file revision history and a unified gateway over OpenAI, Anthropic, OpenRouter and Ollama.
// @host           localhost:8000
// @BasePath       /api
func main() {
	cli.Execute()
}
