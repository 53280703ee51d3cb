package main

import (
	"log"
	"os"

	"github.com/taskmaster/questionbank/cmd/api/commands"
)

// @title QuestionBank API
// @version 1.0
// @description Question/answer/distractor record store

// @host localhost:5000
// @BasePath /api

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
