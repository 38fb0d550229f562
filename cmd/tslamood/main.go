package main

import (
	"github.com/moodfeed/tslamood/utils/dotenv"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		Logger.Log.Fatalf("failed to load .env files: %v", err)
	}
	Logger.InitLogger()

	Execute()
}
